package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ibeckermayer/feedcommenter/internal/browser"
)

const botTestURL = "https://bot.sannysoft.com"

var botTestCmd = &cobra.Command{
	Use:   "bot-test",
	Short: "Open a fingerprint audit page with the stealth browser options",
	Long: `Open bot.sannysoft.com in a visible browser configured exactly like the
feed browser, so you can check what automation signals it leaks.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("opening fingerprint audit page", zap.String("url", botTestURL))

		opts := browser.Options(browser.Settings{
			WindowWidth:  cfg.Browser.WindowWidth,
			WindowHeight: cfg.Browser.WindowHeight,
		})

		allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
		defer cancel()

		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		err := chromedp.Run(ctx,
			chromedp.Navigate(botTestURL),
			chromedp.WaitVisible("body", chromedp.ByQuery),
		)
		if err != nil {
			return fmt.Errorf("failed to navigate: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Press Enter to close the browser...")
		bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		return nil
	},
}
