// SPDX-License-Identifier: MPL-2.0

package runtime

type (
	// BuildRegistryOptions configures runtime registry construction.
	BuildRegistryOptions struct {
		// TTY attaches native commands to a pseudo-terminal.
		TTY bool
	}
)

// BuildRegistry creates a registry holding a native and a virtual runtime.
// The virtual runtime keeps interpreter state, so build one registry per plan.
func BuildRegistry(opts BuildRegistryOptions) *Registry {
	reg := NewRegistry()
	reg.Register(RuntimeTypeNative, NewNativeRuntime(opts.TTY))
	reg.Register(RuntimeTypeVirtual, NewVirtualRuntime())
	return reg
}
