package commands

import "fmt"

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, _, _, err := loadLocalizer(root.Config)
	if err != nil {
		return err
	}
	out := g.out()
	fmt.Fprintf(out, "Configuration %s is valid\n", root.Config)
	fmt.Fprintf(out, "  default language: %s\n", cfg.DefaultLanguage)
	fmt.Fprintf(out, "  languages:        %v\n", cfg.Languages)
	fmt.Fprintf(out, "  page rules:       %d\n", len(cfg.Pages))
	fmt.Fprintf(out, "  dynamic pages:    %v\n", cfg.DynamicPages)
	return nil
}
