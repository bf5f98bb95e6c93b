// Package shift implements the per-machine shift production Report.
package shift
