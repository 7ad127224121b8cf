package cli

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fileforge/convertd/internal/core/domain"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <target-format>",
	Short: "Convert a file without starting the server",
	Long: `Convert a local file or URL to the given target format.

Examples:
  convertd convert report.docx pdf
  convertd convert https://example.com/chart.png jpg
  convertd convert notes.txt pdf --from md`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("from", "", "source format (default: inferred from the file extension)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, target := args[0], args[1]
	from, err := cmd.Flags().GetString("from")
	if err != nil {
		return fmt.Errorf("getting from flag: %w", err)
	}

	var src domain.InputSource
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		src = domain.InputSource{Kind: domain.InputRemoteURL, Value: input}
		if from == "" {
			from = urlFormat(input)
		}
	} else {
		resolved, err := pathResolver.Resolve(input)
		if err != nil {
			return err
		}
		src = domain.InputSource{Kind: domain.InputLocalPath, Value: resolved}
		if from == "" {
			from = domain.NormalizeFormat(filepath.Ext(resolved))
		}
	}
	if from == "" {
		return errors.New("cannot determine source format; pass --from")
	}

	outcome := convertService.Convert(cmd.Context(), domain.NewRequest(from, target, src))
	if !outcome.Success {
		return errors.New(outcome.Error)
	}

	cmd.Printf("wrote %s\n", outcome.ArtifactPath)
	if outcome.ArtifactURL != "" {
		cmd.Printf("download: %s\n", outcome.ArtifactURL)
	}
	return nil
}

// urlFormat infers a format from the URL path, ignoring the query.
func urlFormat(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return domain.NormalizeFormat(path.Ext(u.Path))
}
