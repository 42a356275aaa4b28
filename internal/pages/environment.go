// SPDX-License-Identifier: MPL-2.0

package pages

import "github.com/LowieHuyghe/next-to-firebase/pkg/types"

// Environment scopes a generation pass. It is either NoEnvironment or a
// named deployment environment; the zero value is NoEnvironment.
type Environment struct {
	name types.EnvironmentName
	set  bool
}

// NoEnvironment is the single implicit pass used when no environments are requested.
func NoEnvironment() Environment {
	return Environment{}
}

// InEnvironment scopes a pass to the named environment.
func InEnvironment(name types.EnvironmentName) Environment {
	return Environment{name: name, set: true}
}

// Name returns the environment name and whether one is set.
func (e Environment) Name() (types.EnvironmentName, bool) {
	return e.name, e.set
}

// String returns the environment name, or "" for NoEnvironment.
func (e Environment) String() string {
	return string(e.name)
}

// EnvironmentsOf returns one Environment per name, in order. An empty list
// yields the single NoEnvironment pass.
func EnvironmentsOf(names []types.EnvironmentName) []Environment {
	if len(names) == 0 {
		return []Environment{NoEnvironment()}
	}
	envs := make([]Environment, len(names))
	for i, name := range names {
		envs[i] = InEnvironment(name)
	}
	return envs
}
