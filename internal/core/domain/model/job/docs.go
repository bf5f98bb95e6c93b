// Package job implements the JobOrder aggregate and its fixed stage machine.
//
// A job is created in the preparatory stage together with its warping and covering records,
// borrows a machine for the weaving stage and then moves through finishing, checking and packing
// to completed. Produced meters are clamped to the plan; wastage and packing are recorded per
// product.
package job
