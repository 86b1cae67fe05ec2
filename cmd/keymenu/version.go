package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/johnconnor-sec/keymenu/internal/output"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			formatter := output.NewFormatter(a.stdout)

			formatter.Header(fmt.Sprintf("Keymenu %s", version))
			formatter.Table().
				Headers("Component", "Version").
				Row("Keymenu", version).
				Row("Git commit", commit).
				Row("Build date", date).
				Row("Go version", runtime.Version()).
				Row("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)).
				Print()
		},
	}
}
