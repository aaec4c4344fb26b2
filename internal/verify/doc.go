// Package verify checks the parallel engine against sequential baselines.
//
// A Check is either a fixed scenario with a known answer or a property
// compared with the equivalent slices or loop computation over seeded
// random data. Property checks run every option variant over both sized
// and unsized sources.
package verify
