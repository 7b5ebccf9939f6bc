// Package arch describes accelerator generations — the resource budgets a
// kernel configuration is validated against and the tag a launch resolves
// tuned entry points by.
//
// What
//
//   - Profile: one generation's subgroup width, thread capacity, resident
//     block limit, local-memory budget, and unit count.
//   - Named constructors for the two supported generations (Gen200, Gen100).
//   - Lookup(tag) resolves a tag carried on a launch to its Profile.
//
// Why
//
//	Occupancy — how many blocks one execution unit can keep resident — is a
//	pure function of a configuration's footprint and these limits. Keeping
//	the limits on an immutable value object lets kernelcfg compute occupancy
//	once, at construction, and lets the dispatcher key its closed entry set
//	by Tag without any run-time probing.
//
// Errors
//
//   - ErrUnknownTag if Lookup is given a tag outside the supported set.
package arch
