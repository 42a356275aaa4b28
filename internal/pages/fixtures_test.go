// SPDX-License-Identifier: MPL-2.0

package pages

import "github.com/LowieHuyghe/next-to-firebase/pkg/types"

const testServerlessDir = types.FilesystemPath("/app/.next/serverless")

func page(key, artifactPath string) Page {
	return Classify(key, artifactPath, testServerlessDir)
}

// routeFixture mirrors a typical build: an error page, a root rendered both
// ways, nested routes and a dynamic route.
func routeFixture() []Page {
	return []Page{
		page("/_error", "pages/_error.js"),
		page("/", "pages/index.js"),
		page("/", "pages/index.html"),
		page("/indexx", "pages/indexx.js"),
		page("/index/page", "pages/index/page.js"),
		page("/super/super/deep", "pages/super/super/deep.js"),
		page("/product/[pid]", "pages/product/[pid].js"),
	}
}
