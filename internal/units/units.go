// Package units holds the physical constants and astronomical unit
// conversions shared by the whole simulation. Everything internal runs in
// SI; the conversions exist so configs and output can speak in solar
// masses, kiloparsecs and megayears.
package units

const (
	// G is the gravitational constant [m^3 kg^-1 s^-2].
	G = 6.67430e-11

	// Rig is the ideal gas constant [J mol^-1 K^-1].
	Rig = 8.31446261815324

	// MuHydrogen is the molar mass of atomic hydrogen [kg/mol].
	MuHydrogen = 1.00794e-3
)

// Astronomical conversions to SI.
const (
	Msun = 1.98847e30  // kg
	Kpc  = 3.0857e19   // m
	Myr  = 3.15576e13  // s
	Kms  = 1.0e3       // m/s
)
