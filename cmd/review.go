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
)

var reviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "记录一次复习结果",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		correct, _ := cmd.Flags().GetBool("correct")

		return withContainer(func(c *app.Container) error {
			updated, err := c.Reviews.SubmitReview(cmd.Context(), args[0], correct)
			if err != nil {
				return fmt.Errorf("记录复习失败: %w", describeError(err))
			}
			cmd.Printf("%s -> %s, 已练习 %d 次, 下次复习 %s\n", updated.ID, updated.Status, updated.PracticeCount, updated.NextDue)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().Bool("correct", false, "回答正确")
	reviewCmd.Flags().Bool("wrong", false, "回答错误")
	reviewCmd.MarkFlagsMutuallyExclusive("correct", "wrong")
	reviewCmd.MarkFlagsOneRequired("correct", "wrong")
}
