// Package preparatory implements the warping and covering records that precede weaving.
package preparatory
