/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/eslsoft/lingodeck/internal/app"
	"github.com/eslsoft/lingodeck/internal/entity"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "列出今天需要复习的句子",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		return withContainer(func(c *app.Container) error {
			queue, err := c.Reviews.DailyQueue(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("生成复习队列失败: %w", err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), queue)
			}
			if len(queue) == 0 {
				cmd.Println("今天没有需要复习的句子")
				return nil
			}
			return writeSentenceTable(cmd.OutOrStdout(), queue)
		})
	},
}

func init() {
	rootCmd.AddCommand(queueCmd)
	queueCmd.Flags().IntP("limit", "n", 0, "最多显示的句子数 (0 表示全部)")
	queueCmd.Flags().Bool("json", false, "以 JSON 输出")
}

func writeSentenceTable(out io.Writer, sentences []entity.Sentence) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Status", "Practiced", "Next Due", "Text"})
	table.SetAutoWrapText(false)
	for _, s := range sentences {
		table.Append([]string{s.ID, s.Status.String(), strconv.Itoa(s.PracticeCount), s.NextDue, s.Text})
	}
	table.Render()
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
