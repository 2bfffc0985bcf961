package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var candidateCmd = &cobra.Command{
	Use:   "candidate <id>",
	Short: "Show one candidate's resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		resume, err := client.GetCandidate(commandContext(cmd), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(resume)
		}

		p := resume.Profile
		fmt.Printf("%s (%s)\n", p.Name, resume.ID)
		fmt.Printf("%s, %s\n", p.Role, p.Location)
		if p.Experience != "" {
			fmt.Printf("Experience: %s\n", p.Experience)
		}
		if p.Salary != "" {
			fmt.Printf("Salary: %s\n", p.Salary)
		}
		if len(resume.Skills) > 0 {
			fmt.Printf("Skills: %s\n", strings.Join(resume.Skills, ", "))
		}
		if len(resume.Categories) > 0 {
			fmt.Printf("Categories: %s\n", strings.Join(resume.Categories, ", "))
		}
		if p.Bio != "" {
			fmt.Printf("\n%s\n", p.Bio)
		}
		for _, w := range resume.WorkHistory {
			fmt.Printf("- %s at %s (%s)\n", w.Position, w.Company, w.Duration)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(candidateCmd)
}
