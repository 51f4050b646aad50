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
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/lingodeck/internal/app"
	"github.com/eslsoft/lingodeck/internal/entity"
)

func statusesFromConfig(key string) []string {
	return normalizeStatuses(viper.GetStringSlice(key))
}

func normalizeStatuses(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		name := strings.TrimSpace(value)
		if name == "" {
			continue
		}
		result = append(result, strings.ToLower(name))
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// withContainer builds the application container for the duration of fn.
func withContainer(fn func(c *app.Container) error) error {
	container, cleanup, err := app.Initialize()
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()
	return fn(container)
}

// describeError turns domain errors into short user-facing messages.
func describeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrSentenceNotFound):
		return fmt.Errorf("句子不存在: %w", err)
	case errors.Is(err, entity.ErrDuplicateSentence):
		return fmt.Errorf("句子 ID 已存在: %w", err)
	case errors.Is(err, entity.ErrInvalidSentenceText):
		return fmt.Errorf("句子内容不能为空: %w", err)
	case errors.Is(err, entity.ErrInvalidSentenceStatus):
		return fmt.Errorf("未知的掌握状态: %w", err)
	default:
		return err
	}
}
