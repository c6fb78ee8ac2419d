package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// defaultTabs is the tab layout offered by the wizard.
var defaultTabs = []Tab{
	{TabName: "about", DisplayName: "about", Type: TabProfile},
	{TabName: "projects", DisplayName: "projects", Type: TabText},
	{TabName: "contact", DisplayName: "contact", Type: TabText},
}

// RunWizard interactively builds a profile and saves it to path.
func RunWizard(path string) (*Profile, error) {
	fmt.Println("Let's set up your portfolio page.")
	fmt.Println()

	fb := Fallback()

	namePrompt := promptui.Prompt{
		Label:    "Name",
		Default:  fb.Name,
		Validate: required,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}

	descPrompt := promptui.Prompt{
		Label:   "Short description",
		Default: fb.Description,
	}
	desc, err := descPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("description: %w", err)
	}

	idPrompt := promptui.Prompt{
		Label: "Discord user ID (leave blank to skip presence)",
	}
	discordID, err := idPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("discord id: %w", err)
	}

	layoutPrompt := promptui.Select{
		Label: "Tab layout",
		Items: []string{
			"about / projects / contact",
			"about only",
			"no tabs",
		},
	}
	layout, _, err := layoutPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("tab layout: %w", err)
	}

	p := &Profile{
		Name:                name,
		Description:         desc,
		DiscordID:           strings.TrimSpace(discordID),
		PlaylistDescription: fb.PlaylistDescription,
		Songs:               []Song{},
	}
	switch layout {
	case 0:
		p.Tabs = append([]Tab(nil), defaultTabs...)
	case 1:
		p.Tabs = append([]Tab(nil), defaultTabs[0])
	}

	if err := p.Save(path); err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}

	fmt.Printf("\nProfile saved to %s\n", path)
	return p, nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}
