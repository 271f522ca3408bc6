// Package violation implements customer reports of driver misconduct and their
// administrative resolution.
//
// State transitions (administrator only):
//
//	Pending ──> Investigating ──┬──> Resolved
//	   │                        └──> Dismissed
//	   └──> Resolved | Dismissed
//
// Resolving may set a penalty (debited from the driver's ledger by services.Settlement),
// a warning count and a ban decision. The ban itself is enforced outside of this package.
package violation
