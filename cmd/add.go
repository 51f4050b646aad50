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
	"strings"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingodeck/internal/app"
	"github.com/eslsoft/lingodeck/internal/entity"
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "添加一个待复习的句子",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		translation, _ := cmd.Flags().GetString("translation")
		language, _ := cmd.Flags().GetString("language")
		tags, _ := cmd.Flags().GetStringSlice("tags")

		return withContainer(func(c *app.Container) error {
			created, err := c.Reviews.AddSentence(cmd.Context(), &entity.Sentence{
				ID:          id,
				Text:        strings.Join(args, " "),
				Translation: translation,
				Language:    entity.ParseLanguage(language),
				Tags:        tags,
			})
			if err != nil {
				return fmt.Errorf("添加句子失败: %w", describeError(err))
			}
			cmd.Printf("已添加 %s (下次复习 %s)\n", created.ID, created.NextDue)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().String("id", "", "句子 ID (默认生成 UUID)")
	addCmd.Flags().StringP("translation", "t", "", "译文")
	addCmd.Flags().StringP("language", "l", "en", "语言代码")
	addCmd.Flags().StringSlice("tags", nil, "标签，逗号分隔或重复指定")
}
