// Package autonomy models how long a pool of portable power sources can sustain a set of devices.
//
// The package holds the domain types (sources, devices, scenario, topology), the topology editing
// heuristics and the Engine that dispatches an Input to a registered Calculator. Concrete formula
// families live in the calculators subpackage.
package autonomy
