// Package searchspace implements the requirement/capability matching algebra
// used to allocate test environments. A test declares requirements (count
// ranges, option sets), a platform declares capabilities of the same shapes,
// and the algebra answers two questions: does the capability satisfy the
// requirement, and what is the smallest concrete configuration that still
// does. All operations are pure value computations and safe for concurrent
// use.
package searchspace
