package cmd

import (
	"github.com/urfave/cli/v2"

	cannon "github.com/ethereum-optimism/optimism/cannon/cmd"

	"github.com/Cra2yPierr0t/riscv-emu/rvgo/riscv"
)

const envVarPrefix = "RVEMU"

func prefixEnvVars(name string) []string {
	return []string{envVarPrefix + "_" + name}
}

var (
	MemorySizeFlag = &cli.Uint64Flag{
		Name:    "memory-size",
		Usage:   "Size of the flat address space in bytes. The firmware must fit in it.",
		EnvVars: prefixEnvVars("MEMORY_SIZE"),
		Value:   riscv.DefaultMemorySize,
	}
	WritableX0Flag = &cli.BoolFlag{
		Name:    "x0-writable",
		Usage:   "Keep values written to register x0 instead of hardwiring it to zero.",
		EnvVars: prefixEnvVars("X0_WRITABLE"),
	}
	LogLevelFlag = &cli.StringFlag{
		Name:    "log.level",
		Usage:   "Log level: trace, debug, info, warn, error or crit. LOAD/STORE traces are logged at trace level.",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Value:   "info",
	}

	RunInputFlag = &cli.PathFlag{
		Name:      "input",
		Usage:     "path of the JSON state to resume, instead of loading a firmware image.",
		EnvVars:   prefixEnvVars("INPUT"),
		TakesFile: true,
	}
	RunOutputFlag = &cli.PathFlag{
		Name:      "output",
		Usage:     "path of the JSON state to write when the run ends. Empty to not write it.",
		EnvVars:   prefixEnvVars("OUTPUT"),
		TakesFile: true,
	}
	RunMaxStepsFlag = &cli.Uint64Flag{
		Name:    "max-steps",
		Usage:   "stop with an error after this many steps, 0 for no limit.",
		EnvVars: prefixEnvVars("MAX_STEPS"),
	}
	RunSnapshotFmtFlag = &cli.StringFlag{
		Name:    "snapshot-fmt",
		Usage:   "format for snapshot output file names.",
		EnvVars: prefixEnvVars("SNAPSHOT_FMT"),
		Value:   "state-%d.json",
	}
	RunPProfCPUFlag = &cli.BoolFlag{
		Name:    "pprof.cpu",
		Usage:   "enable pprof cpu profiling",
		EnvVars: prefixEnvVars("PPROF_CPU"),
	}

	LoadFirmwarePathFlag = &cli.PathFlag{
		Name:      "path",
		Usage:     "path of the flat binary firmware image to load.",
		EnvVars:   prefixEnvVars("FIRMWARE"),
		TakesFile: true,
		Required:  true,
	}
	LoadFirmwareOutFlag = &cli.PathFlag{
		Name:      "out",
		Usage:     "output path of the JSON state.",
		EnvVars:   prefixEnvVars("LOAD_OUT"),
		TakesFile: true,
		Value:     "state.json",
	}

	WitnessInputFlag = &cli.PathFlag{
		Name:      "input",
		Usage:     "path of the JSON state.",
		EnvVars:   prefixEnvVars("WITNESS_INPUT"),
		TakesFile: true,
		Required:  true,
	}
	WitnessOutputFlag = &cli.PathFlag{
		Name:      "output",
		Usage:     "path to write the witness and its hash to as JSON. Empty to only print the hash.",
		EnvVars:   prefixEnvVars("WITNESS_OUTPUT"),
		TakesFile: true,
	}
)

const (
	RunStopAtFlagName     = "stop-at"
	RunSnapshotAtFlagName = "snapshot-at"
	RunInfoAtFlagName     = "info-at"
)

const stepMatcherUsage = "'never', 'always', '=123' at exactly step 123, '%123' for every 123 steps"

// stepMatcherFlags returns the step pattern flags of the run command. The
// flag values are set in place when parsed, so every command gets its own.
func stepMatcherFlags() []cli.Flag {
	return []cli.Flag{
		&cli.GenericFlag{
			Name:    RunStopAtFlagName,
			Usage:   "step pattern to stop at: " + stepMatcherUsage,
			EnvVars: prefixEnvVars("STOP_AT"),
			Value:   cannon.MustStepMatcherFlag("never"),
		},
		&cli.GenericFlag{
			Name:    RunSnapshotAtFlagName,
			Usage:   "step pattern to write a JSON state snapshot at: " + stepMatcherUsage,
			EnvVars: prefixEnvVars("SNAPSHOT_AT"),
			Value:   cannon.MustStepMatcherFlag("never"),
		},
		&cli.GenericFlag{
			Name:    RunInfoAtFlagName,
			Usage:   "step pattern to log progress at: " + stepMatcherUsage,
			EnvVars: prefixEnvVars("INFO_AT"),
			Value:   cannon.MustStepMatcherFlag("never"),
		},
	}
}
