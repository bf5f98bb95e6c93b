// Package services holds the domain services that coordinate several aggregates within one unit of work:
//   - JobWorkflow: job order stages, machine hand-over and order settlement
//   - MachineAllocator: claim, release and reassignment of machines
//   - ProductionAllocator: shift report fan-out into job and order ledgers
//   - InventoryLedger: stock checks, consumption and restoration for orders
//
// Services are stateless and never touch persistence; command handlers load the aggregates, call a
// service and save the result in the same transaction.
package services
