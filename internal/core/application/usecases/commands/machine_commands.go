package commands

import (
	"errors"
	"fmt"
	"strings"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var (
	ErrRegisterMachineCommandIsNotConstructed = errors.New(
		"RegisterMachineCommand must be created via NewRegisterMachineCommand constructor",
	)
	ErrMachineCommandIsNotConstructed = errors.New("machine command must be created via its constructor")
)

// RegisterMachineCommand adds a free weaving machine.
type RegisterMachineCommand struct { //nolint:recvcheck //using for validation
	machineID    kernel.UUID
	code         string
	manufacturer string
	headCount    int

	guard guard.ConstructorGuard
}

func NewRegisterMachineCommand(machineID kernel.UUID, code, manufacturer string, headCount int) (RegisterMachineCommand, error) {
	code = strings.TrimSpace(code)
	var codeErr, headsErr error
	if code == "" {
		codeErr = errs.NewValueIsRequiredError("code")
	}
	if headCount < 1 {
		headsErr = errs.NewValueIsInvalidErrorWithCause("head count", fmt.Errorf("%d is not greater than 0", headCount))
	}
	if err := errors.Join(machineID.Validate(), codeErr, headsErr); err != nil {
		return RegisterMachineCommand{}, err
	}

	return RegisterMachineCommand{
		machineID:    machineID,
		code:         code,
		manufacturer: strings.TrimSpace(manufacturer),
		headCount:    headCount,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterMachineCommand) Validate() error {
	return c.guard.Validate(ErrRegisterMachineCommandIsNotConstructed)
}

func (c RegisterMachineCommand) MachineID() kernel.UUID { return c.machineID }
func (c RegisterMachineCommand) Code() string           { return c.code }
func (c RegisterMachineCommand) Manufacturer() string   { return c.manufacturer }
func (c RegisterMachineCommand) HeadCount() int         { return c.headCount }

// MachineCommand addresses one machine. It is the input of StartMaintenance and EndMaintenance.
type MachineCommand struct { //nolint:recvcheck //using for validation
	machineID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMachineCommand(machineID kernel.UUID) (MachineCommand, error) {
	if err := machineID.Validate(); err != nil {
		return MachineCommand{}, err
	}
	return MachineCommand{machineID: machineID, guard: guard.NewConstructorGuard()}, nil
}

func (c MachineCommand) Validate() error {
	return c.guard.Validate(ErrMachineCommandIsNotConstructed)
}

func (c MachineCommand) MachineID() kernel.UUID { return c.machineID }
