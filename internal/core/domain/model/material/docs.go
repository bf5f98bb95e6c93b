// Package material implements the RawMaterial aggregate and its append-only stock movement log.
package material
