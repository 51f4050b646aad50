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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingodeck/internal/app"
	"github.com/eslsoft/lingodeck/internal/repository"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "按条件列出句子",
	Example: `  lingodeck list --filter "status in ['red', 'yellow'] && next_due <= '2024-01-05'"
  lingodeck list --filter "text.startsWith('Ich')" --order-by "practice_count desc"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("filter")
		orderBy, _ := cmd.Flags().GetString("order-by")
		page, _ := cmd.Flags().GetInt32("page")
		pageSize, _ := cmd.Flags().GetInt32("page-size")
		asJSON, _ := cmd.Flags().GetBool("json")

		return withContainer(func(c *app.Container) error {
			items, total, err := c.Reviews.ListSentences(cmd.Context(), &repository.ListSentenceQuery{
				Pagination:  repository.Pagination{PageNo: page, PageSize: pageSize},
				FilterOrder: repository.FilterOrder{Filter: filter, OrderBy: orderBy},
			})
			if err != nil {
				return fmt.Errorf("查询句子失败: %w", err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"items": items, "total": total})
			}
			if err := writeSentenceTable(cmd.OutOrStdout(), items); err != nil {
				return err
			}
			cmd.Printf("共 %d 条\n", total)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("filter", "", "CEL 过滤表达式 (status, next_due, text, language, practice_count)")
	listCmd.Flags().String("order-by", "", "排序字段，如 \"next_due desc, id\"")
	listCmd.Flags().Int32("page", 1, "页码")
	listCmd.Flags().Int32("page-size", 50, "每页条数 (0 表示全部)")
	listCmd.Flags().Bool("json", false, "以 JSON 输出")
}
