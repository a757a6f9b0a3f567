// Package force computes the per-particle physical derivatives: NFW halo
// gravity, grad-h corrected SPH pressure forces, artificial viscosity with
// signal-speed limiting, thermal conduction, and the star-formation sink.
//
// A Computer evaluates one particle at a time against its neighbor
// snapshot. It reads neighbor state and writes only the particle's own
// derivative accumulators, so independent particles can be evaluated
// concurrently once the density pass has completed.
//
// Kernel argument order is load-bearing: GradW(p,q) and GradW(q,p) use
// different smoothing lengths and are not negatives of each other. The
// pressure force sums both orientations, the pressure energy only
// GradW(p,q), and the viscosity force their difference. These asymmetries
// are what make the symmetrized pairwise sums conserve momentum; do not
// collapse them to a single convention.
package force
