package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	cannon "github.com/ethereum-optimism/optimism/cannon/cmd"
	"github.com/ethereum-optimism/optimism/op-service/jsonutil"

	"github.com/Cra2yPierr0t/riscv-emu/rvgo/fast"
)

var OutFilePerm = os.FileMode(0o755)

// loadRunState resumes the state given with --input, or loads the firmware
// image named by the first argument into a fresh machine.
func loadRunState(ctx *cli.Context) (*fast.VMState, error) {
	if input := ctx.Path(RunInputFlag.Name); input != "" {
		state, err := jsonutil.LoadJSON[fast.VMState](input)
		if err != nil {
			return nil, fmt.Errorf("invalid input state (%v): %w", input, err)
		}
		if ctx.IsSet(WritableX0Flag.Name) {
			state.SetWritableX0(ctx.Bool(WritableX0Flag.Name))
		}
		if err := state.Check(); err != nil {
			return nil, fmt.Errorf("invalid input state (%v): %w", input, err)
		}
		return state, nil
	}
	path := ctx.Args().First()
	if path == "" {
		return nil, fmt.Errorf("missing firmware path argument, or --%s state", RunInputFlag.Name)
	}
	cfg := fast.Config{
		MemorySize: ctx.Uint64(MemorySizeFlag.Name),
		WritableX0: ctx.Bool(WritableX0Flag.Name),
	}
	return fast.LoadFirmwareFile(path, cfg)
}

// stepMatcher returns the matcher of a step flag. A zero interval is rejected.
func stepMatcher(ctx *cli.Context, name string) (cannon.StepMatcher, error) {
	flag := ctx.Generic(name).(*cannon.StepMatcherFlag)
	if repr := flag.String(); strings.HasPrefix(repr, "%") {
		if n, err := strconv.ParseUint(repr[1:], 0, 64); err == nil && n == 0 {
			return nil, fmt.Errorf("invalid --%s %q: step interval must be positive", name, repr)
		}
	}
	return flag.Matcher(), nil
}

func Run(ctx *cli.Context) error {
	if ctx.Bool(RunPProfCPUFlag.Name) {
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	}

	lvl, err := ParseLogLevel(ctx.String(LogLevelFlag.Name))
	if err != nil {
		return err
	}
	l := Logger(ctx.App.ErrWriter, lvl)

	state, err := loadRunState(ctx)
	if err != nil {
		return err
	}

	stopAt, err := stepMatcher(ctx, RunStopAtFlagName)
	if err != nil {
		return err
	}
	snapshotAt, err := stepMatcher(ctx, RunSnapshotAtFlagName)
	if err != nil {
		return err
	}
	infoAt, err := stepMatcher(ctx, RunInfoAtFlagName)
	if err != nil {
		return err
	}
	snapshotFmt := ctx.String(RunSnapshotFmtFlag.Name)

	us := fast.NewInstrumentedState(state,
		fast.WithLogger(l),
		fast.WithMaxSteps(ctx.Uint64(RunMaxStepsFlag.Name)))

	start := time.Now()
	startStep := state.Step

	hook := func(st *fast.VMState) (bool, error) {
		if infoAt(st) {
			delta := time.Since(start)
			l.Info("processing",
				"step", st.Step,
				"pc", fast.HexU64(st.PC),
				"insn", fast.HexU32(st.Instr()),
				"ips", float64(st.Step-startStep)/(float64(delta)/float64(time.Second)),
			)
		}
		if stopAt(st) {
			l.Info("stopping early", "step", st.Step)
			return true, nil
		}
		if snapshotAt(st) {
			if err := jsonutil.WriteJSON(fmt.Sprintf(snapshotFmt, st.Step), st, OutFilePerm); err != nil {
				return false, fmt.Errorf("failed to write state snapshot: %w", err)
			}
		}
		return false, nil
	}

	if err := us.Run(ctx.Context, hook); err != nil {
		return err
	}

	logFinal(l, us, time.Since(start), startStep)

	if err := jsonutil.WriteJSON(ctx.Path(RunOutputFlag.Name), state, OutFilePerm); err != nil {
		return fmt.Errorf("failed to write state output: %w", err)
	}
	return DumpRegisters(ctx.App.Writer, state)
}

func logFinal(l log.Logger, us *fast.InstrumentedState, elapsed time.Duration, startStep uint64) {
	state := us.State()
	l.Info("run finished",
		"exited", state.Exited,
		"step", state.Step,
		"steps", state.Step-startStep,
		"pc", fast.HexU64(state.PC),
		"insn", fast.HexU32(state.Instr()),
		"unknownFunctions", us.UnknownFunctions(),
		"elapsed", elapsed,
	)
}

func NewRunCommand() *cli.Command {
	return &cli.Command{
		Name:        "run",
		Usage:       "Run a flat RV64IM firmware image, or resume a JSON state",
		Description: "Run a flat RV64IM firmware image until it reaches an unrecognized opcode, then print the 32 registers in hex. See flags to stop early or to write snapshots.",
		ArgsUsage:   "[firmware.bin]",
		Action:      Run,
		Flags: append([]cli.Flag{
			RunInputFlag,
			RunOutputFlag,
			MemorySizeFlag,
			WritableX0Flag,
			RunMaxStepsFlag,
			RunSnapshotFmtFlag,
			LogLevelFlag,
			RunPProfCPUFlag,
		}, stepMatcherFlags()...),
	}
}
