// Package machine implements the Machine aggregate: availability (free, running, maintenance),
// the head-to-product assignment and the job a machine is currently running.
package machine
