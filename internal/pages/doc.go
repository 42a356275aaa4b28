// SPDX-License-Identifier: MPL-2.0

// Package pages maps a Next.js serverless pages manifest onto Firebase.
//
// A manifest entry ("/product/[pid]" -> "pages/product/[pid].js") is
// classified once into a Page whose Kind says whether it is a static HTML
// page or a server-rendered page backed by a Cloud Function. From the pages
// of a build the package derives:
//
//   - hosting rewrites, one set per environment, sorted so that the
//     catch-all "**/**" rule for the error page always comes last;
//   - Cloud Function export statements for the functions index file, where
//     every environment after the first aliases the first environment's
//     export instead of constructing the handler again.
//
// All derivations are pure and deterministic for a given manifest order.
package pages
