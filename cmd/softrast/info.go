package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "info <model>",
		Short: "Print mesh statistics and validate indices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			mesh, err := loadMesh(args[0], cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "name:      %s\n", mesh.Name)
			fmt.Fprintf(w, "vertices:  %d\n", mesh.VertexCount())
			fmt.Fprintf(w, "uvs:       %d\n", len(mesh.UVs))
			fmt.Fprintf(w, "normals:   %d\n", len(mesh.Normals))
			fmt.Fprintf(w, "triangles: %d\n", mesh.TriangleCount())
			fmt.Fprintf(w, "bounds:    %v .. %v\n", mesh.BoundsMin, mesh.BoundsMax)
			if mesh.Diffuse != nil {
				fmt.Fprintf(w, "diffuse:   %dx%d\n", mesh.Diffuse.Width(), mesh.Diffuse.Height())
			} else {
				fmt.Fprintln(w, "diffuse:   none")
			}
			fmt.Fprintln(w, "indices:   ok")
			return nil
		},
	}
}
