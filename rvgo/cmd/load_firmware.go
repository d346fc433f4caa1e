package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"

	"github.com/Cra2yPierr0t/riscv-emu/rvgo/fast"
)

func LoadFirmware(ctx *cli.Context) error {
	path := ctx.Path(LoadFirmwarePathFlag.Name)
	cfg := fast.Config{
		MemorySize: ctx.Uint64(MemorySizeFlag.Name),
		WritableX0: ctx.Bool(WritableX0Flag.Name),
	}
	state, err := fast.LoadFirmwareFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to load firmware: %w", err)
	}
	if err := jsonutil.WriteJSON(ctx.Path(LoadFirmwareOutFlag.Name), state, OutFilePerm); err != nil {
		return fmt.Errorf("failed to write state output: %w", err)
	}
	return nil
}

var LoadFirmwareCommand = &cli.Command{
	Name:        "load-firmware",
	Usage:       "Load a flat binary firmware image into a JSON state",
	Description: "Load a flat binary firmware image at address 0 of a zeroed memory, and write the initial state as JSON.",
	Action:      LoadFirmware,
	Flags: []cli.Flag{
		LoadFirmwarePathFlag,
		LoadFirmwareOutFlag,
		MemorySizeFlag,
		WritableX0Flag,
	},
}
