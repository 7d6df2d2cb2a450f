// Package collections provides heap-backed containers built only on the
// allocate/deallocate contract.
//
// There is no layer below the kernel heap to report memory pressure to, so
// these containers treat allocation failure as fatal: they panic with an
// *AllocError instead of returning an error.
package collections
