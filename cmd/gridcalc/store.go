package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gridcalc-go/internal/logging"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/output"
)

func newStoreCmd() *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Keep named sheets in the local database",
	}

	putCmd := &cobra.Command{
		Use:   "put <name> <file>",
		Short: "Store a sheet under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrid(args[1])
			if err != nil {
				return err
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Put(args[0], g); err != nil {
				return fmt.Errorf("failed to store %s: %w", args[0], err)
			}
			logging.SheetSaved("store:"+args[0], len(g.Entries()))
			return nil
		},
	}

	var outputPath string
	getCmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Render a stored sheet or write it to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			g, err := s.Get(args[0], gridOptions())
			if err != nil {
				return err
			}
			if outputPath != "" {
				return saveGrid(g, outputPath)
			}
			return stdoutRenderer().Grid(g, renderValues)
		},
	}
	getCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the sheet to a file instead of rendering it")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored sheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			infos, err := s.List()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE\tCELLS\tSAVED")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%s\n",
					info.Name, info.Width, info.Height, info.Cells, info.Saved.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a stored sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Delete(args[0])
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every stored sheet as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			infos, err := s.List()
			if err != nil {
				return err
			}
			book := &models.WorkbookData{
				BookName: filepath.Base(cfg.Store.Path),
				Sheets:   make(map[string]models.SheetData, len(infos)),
			}
			for _, info := range infos {
				g, err := s.Get(info.Name, gridOptions())
				if err != nil {
					return err
				}
				snapshot := g.Snapshot()
				snapshot.Name = info.Name
				book.Sheets[info.Name] = snapshot
			}
			data, err := output.WorkbookToJSON(book, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
	dumpCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	storeCmd.AddCommand(putCmd, getCmd, listCmd, rmCmd, dumpCmd)
	return storeCmd
}
