// Package kernel holds the value objects shared by every aggregate of the production floor:
// UUID identifiers and Quantities, the per-product meter vectors carried by orders, jobs and
// preparatory records.
package kernel
