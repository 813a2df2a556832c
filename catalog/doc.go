// Package catalog defines the static building blocks of the tool catalog:
// tool descriptors, the fixed category set, and the module pairs
// (descriptor + handler factory) that make up the compiled-in tool list.
//
// Nothing in this package performs I/O. Descriptors and categories are
// immutable for the lifetime of the process; the registry package combines
// them with remote enable/premium flags to produce a built registry.
//
// # Modules
//
// A Module pairs a ToolDescriptor with a Factory producing the tool's
// Handler. Group records the authoring group the module was written under
// and is compared against the descriptor's Category as a data-quality check:
//
//	mod := catalog.Module{
//	    Group: "crypto",
//	    Meta: &catalog.ToolDescriptor{
//	        ID:       "hash-text",
//	        Name:     "Hash Text",
//	        Category: "crypto",
//	        Path:     "/tools/crypto/hash-text",
//	    },
//	    Factory: func() catalog.Handler { return hashText },
//	}
//
// # Categories
//
// Categories returns the fixed category set sorted by Order. A tool whose
// Category is not in this set is still a valid tool; category-based
// consumers simply never see it.
package catalog
