// Package domain models the Great Lakes climatology project settings and the
// external routines they parameterize.
//
// # Variables and File Categories
//
// Variable identifiers follow the WRF/CESM post-processing conventions:
//
//	T2, Tmax, Tmin     2 m air temperature and daily extremes (K)
//	precip, preccu     total and convective precipitation (mm/day)
//	solprec, liqprec   solid and liquid precipitation
//	p-et, evap, pet    net precipitation, evapotranspiration, potential ET
//	snwmlt, waterflx   snow melt and net surface water flux
//	runoff, sfroff     total and surface runoff
//	aSM, rSM           absolute and relative soil moisture
//
// Extreme-value variables carry an aggregation prefix and window suffix,
// e.g. "MaxPrecip_1d" is the maximum daily precipitation and
// "MaxPrecip_5d" the maximum 5-day accumulation.
//
// Each variable is read from one or more file categories: "srfc" (surface
// diagnostics), "xtrm" (daily extremes), "hydro" (hydrological fluxes),
// "lsm" (land surface model) and "aux" (derived indices such as SPEI).
//
// # Wet-day Thresholds
//
// Wet-day statistics are computed for several precipitation thresholds and
// named with a three-digit suffix in tenths of mm/day:
//
//	_002  0.2 mm/day
//	_010  1 mm/day
//	_100  10 mm/day
//	_200  20 mm/day
//
// So "wetfrq_010" is the fraction of days with at least 1 mm of precipitation
// and "CDD_002" the longest run of days below 0.2 mm.
//
// # Collections
//
// An [ExperimentCollection] groups runs that are plotted together. The
// master member drives the time axis and shared metadata, the reference is
// the baseline for differences, and the target is the member that
// comparisons are computed against. Reference and target are optional.
//
// # Axis Ranges
//
// Climatology plots are annotated per shape (a watershed or basin such as
// "GLB" for the Great Lakes basin). Each shape's [RangeTable] maps a
// variable group name to the y-axis limits; it is the shared defaults
// overlaid with the shape's own settings, plus an "_obs" copy of every key
// for observation-only panels.
package domain
