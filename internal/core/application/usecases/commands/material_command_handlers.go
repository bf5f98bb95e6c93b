package commands

import (
	"context"
	"time"

	"textile/internal/core/domain/model/material"
)

type RegisterMaterialCommandHandler struct {
	uowFactory MaterialUoWFactory
}

func NewRegisterMaterialCommandHandler(uowFactory MaterialUoWFactory) RegisterMaterialCommandHandler {
	return RegisterMaterialCommandHandler{uowFactory: uowFactory}
}

func (h RegisterMaterialCommandHandler) Handle(ctx context.Context, cmd RegisterMaterialCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	m, err := material.NewRawMaterial(cmd.MaterialID(), cmd.Name(), cmd.Category(), cmd.MinStock())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MaterialRepository().Add(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ReceiveMaterialCommandHandler adds stock and appends an INWARD movement.
type ReceiveMaterialCommandHandler struct {
	uowFactory MaterialUoWFactory
}

func NewReceiveMaterialCommandHandler(uowFactory MaterialUoWFactory) ReceiveMaterialCommandHandler {
	return ReceiveMaterialCommandHandler{uowFactory: uowFactory}
}

func (h ReceiveMaterialCommandHandler) Handle(ctx context.Context, cmd ReceiveMaterialCommand) error {
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

	m, err := uow.MaterialRepository().Get(ctx, cmd.MaterialID())
	if err != nil {
		return err
	}
	if err = m.Receive(cmd.Weight(), cmd.Reference(), time.Now().UTC()); err != nil {
		return err
	}
	if err = uow.MaterialRepository().Update(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
