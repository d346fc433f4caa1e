package cmd

import "github.com/urfave/cli/v2"

func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "rvemu"
	app.Usage = "RV64IM flat firmware emulator"
	app.Description = "Runs flat binary RV64IM firmware images from address 0 and prints the final register file."
	runCommand := NewRunCommand()
	app.DefaultCommand = runCommand.Name
	app.Commands = []*cli.Command{
		runCommand,
		LoadFirmwareCommand,
		WitnessCommand,
	}
	return app
}
