package builtin

import "github.com/mwantia/vfsh/cmd"

// NewManager returns a command manager with every builtin command registered.
func NewManager() (*cmd.CommandManager, error) {
	manager := cmd.NewCommandManager()

	err := manager.Register(
		&CdCommand{},
		NewLsCommand(),
		NewLlCommand(),
		NewLaCommand(),
		&MkdirCommand{},
		&ChownCommand{},
		&ChmodCommand{},
		&CatCommand{},
		&GrepCommand{},
		&PwdCommand{},
		&WhoamiCommand{},
		&ExitCommand{},
		NewHelpCommand(manager),
	)
	if err != nil {
		return nil, err
	}

	return manager, nil
}
