package commands

import (
	"context"
	"errors"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/preparatory"
	"textile/internal/pkg/guard"
)

var ErrPreparatoryCommandIsNotConstructed = errors.New(
	"PreparatoryCommand must be created via NewPreparatoryCommand constructor",
)

// PreparatoryCommand addresses one warping or covering record.
type PreparatoryCommand struct { //nolint:recvcheck //using for validation
	recordID kernel.UUID

	guard guard.ConstructorGuard
}

func NewPreparatoryCommand(recordID kernel.UUID) (PreparatoryCommand, error) {
	if err := recordID.Validate(); err != nil {
		return PreparatoryCommand{}, err
	}
	return PreparatoryCommand{recordID: recordID, guard: guard.NewConstructorGuard()}, nil
}

func (c PreparatoryCommand) Validate() error {
	return c.guard.Validate(ErrPreparatoryCommandIsNotConstructed)
}

func (c PreparatoryCommand) RecordID() kernel.UUID { return c.recordID }

// PreparatoryCommandHandler starts or completes a preparatory record. Weaving can be planned
// once both records of a job are completed.
type PreparatoryCommandHandler struct {
	uowFactory PreparatoryUoWFactory
	transition func(p *preparatory.Process) error
}

func NewStartPreparatoryCommandHandler(uowFactory PreparatoryUoWFactory) PreparatoryCommandHandler {
	return PreparatoryCommandHandler{uowFactory: uowFactory, transition: (*preparatory.Process).Start}
}

func NewCompletePreparatoryCommandHandler(uowFactory PreparatoryUoWFactory) PreparatoryCommandHandler {
	return PreparatoryCommandHandler{
		uowFactory: uowFactory,
		transition: func(p *preparatory.Process) error { return p.Complete(time.Now().UTC()) },
	}
}

func (h PreparatoryCommandHandler) Handle(ctx context.Context, cmd PreparatoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.PreparatoryRepository().Get(ctx, cmd.RecordID())
	if err != nil {
		return err
	}
	if err = h.transition(p); err != nil {
		return err
	}
	if err = uow.PreparatoryRepository().Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
