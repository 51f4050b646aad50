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
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingodeck/internal/app"
	"github.com/eslsoft/lingodeck/internal/entity"
)

var workbookCmd = &cobra.Command{
	Use:   "workbook",
	Short: "按天稳定地打乱练习册选择题选项",
	Long:  "读取练习册题目 JSON 数组 (id, question, options, correctAnswer)，输出当天固定的选项顺序，并在空闲时预热相邻题目。",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		day, _ := cmd.Flags().GetString("day")
		index, _ := cmd.Flags().GetInt("index")
		radius, _ := cmd.Flags().GetInt("radius")
		all, _ := cmd.Flags().GetBool("all")
		wait, _ := cmd.Flags().GetDuration("wait")

		items, err := loadWorkbookItems(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("练习册为空")
		}
		if index < 0 || index >= len(items) {
			return fmt.Errorf("题目序号 %d 超出范围 [0, %d)", index, len(items))
		}

		wb, err := app.InitializeWorkbench()
		if err != nil {
			return fmt.Errorf("初始化应用失败: %w", err)
		}
		if day == "" {
			day = wb.Scheduler.Today()
		} else if _, err := time.Parse(entity.DateLayout, day); err != nil {
			return fmt.Errorf("日期格式应为 YYYY-MM-DD: %w", err)
		}
		if radius < 0 {
			radius = wb.Config.Shuffle.Radius
		}

		cancel := wb.Shuffles.Warmup(items, day, index, radius, nil)
		defer cancel()

		selected := []entity.WorkbookItem{items[index]}
		if all {
			selected = items
		}
		shuffled := make([]entity.WorkbookItem, 0, len(selected))
		for _, item := range selected {
			shuffled = append(shuffled, wb.Shuffles.GetShuffledItem(item, day, nil))
		}

		if wait > 0 {
			time.Sleep(wait)
		}
		wb.Logger.WithField("day", day).WithField("cached", wb.Shuffles.Len()).Debug("workbook shuffled")
		return writeJSON(cmd.OutOrStdout(), shuffled)
	},
}

func init() {
	rootCmd.AddCommand(workbookCmd)
	workbookCmd.Flags().StringP("file", "f", "-", "题目 JSON 文件，使用 - 表示标准输入")
	workbookCmd.Flags().String("day", "", "日期键 YYYY-MM-DD (默认今天)")
	workbookCmd.Flags().Int("index", 0, "当前题目序号")
	workbookCmd.Flags().Int("radius", -1, "预热半径 (默认读取 shuffle.radius)")
	workbookCmd.Flags().Bool("all", false, "输出全部题目")
	workbookCmd.Flags().Duration("wait", 0, "退出前等待预热完成的时间")
}

func loadWorkbookItems(path string, stdin io.Reader) ([]entity.WorkbookItem, error) {
	reader := stdin
	if path != "-" {
		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("打开题目文件失败: %w", err)
		}
		defer file.Close()
		reader = file
	}
	var items []entity.WorkbookItem
	if err := json.NewDecoder(reader).Decode(&items); err != nil {
		return nil, fmt.Errorf("解析题目文件失败: %w", err)
	}
	return items, nil
}
