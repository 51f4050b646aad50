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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingodeck/internal/app"
)

// dbInitCmd applies the schema and optionally imports sentences exported by the web client
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "初始化数据库并导入句子",
	Long:  "执行数据库迁移，并可通过 --seed 从网页端导出的 JSON 数组导入句子。注意: go-sqlite3 需要 CGO_ENABLED=1 构建。",
	RunE: func(cmd *cobra.Command, args []string) error {
		seedPath, _ := cmd.Flags().GetString("seed")
		return withContainer(func(c *app.Container) error {
			// Initialize already migrated the schema while connecting.
			c.Logger.WithField("driver", c.Config.Database.Driver).Info("schema ready")
			if seedPath == "" {
				cmd.Println("数据库初始化完成")
				return nil
			}

			file, err := os.Open(filepath.Clean(seedPath))
			if err != nil {
				return fmt.Errorf("打开种子文件失败: %w", err)
			}
			defer file.Close()

			result, err := c.Reviews.ImportSentences(cmd.Context(), file)
			if err != nil {
				return fmt.Errorf("导入种子数据失败: %w", describeError(err))
			}
			cmd.Printf("数据库初始化完成: 新增 %d 条, 更新 %d 条\n", result.Created, result.Updated)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().String("seed", "", "句子 JSON 数组文件 (id, text, status, practiceCount, lastPracticed, nextDue)")
}
