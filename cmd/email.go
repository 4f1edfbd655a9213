/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type SendEmailConfig struct {
	Analyser       AnalyserConfig
	From           string
	To             string
	Types          []string
	DryRun         bool
	SMTPServer     string
	SMTPUsername   string
	SMTPPassword   string
	SendgridAPIKey string
}

var emailCmd = &cobra.Command{
	Use:   "email <address> <analysis_name...> [date] [date]",
	Short: "Sends an email report",
	Long: `Emails one or more analyses to the given address.
  <analysis_name> is one or more of: histogram, comebacks.
  Optional date arguments can be provided at the end (e.g. '1980s' or '1980 1990') and
  restrict comebacks to songs that first charted in that range.
  Mail is sent through SendGrid if sendgrid_api_key is set, and over SMTP otherwise.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		to := args[0]
		analysisTypes, dateArgs := splitDateArgs(args[1:])
		if len(analysisTypes) == 0 {
			fmt.Println("Error: No analysis types specified")
			os.Exit(1)
		}

		analyserConfig := newAnalyserConfig()
		start, end, err := parseDateRangeFromArgs(dateArgs)
		if err != nil {
			fmt.Printf("Error parsing dates: %v\n", err)
			os.Exit(1)
		}
		analyserConfig.Start = start
		analyserConfig.End = end
		analyserConfig.NumToReturn = 20

		config := SendEmailConfig{
			Analyser:       analyserConfig,
			From:           viper.GetString("from"),
			To:             to,
			Types:          analysisTypes,
			DryRun:         viper.GetBool("dry_run"),
			SMTPServer:     viper.GetString("smtp_server"),
			SMTPUsername:   viper.GetString("smtp_username"),
			SMTPPassword:   viper.GetString("smtp_password"),
			SendgridAPIKey: viper.GetString("sendgrid_api_key"),
		}
		err = sendEmail(cmd.Context(), config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var from string
	emailCmd.Flags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", emailCmd.Flags().Lookup("from"))

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dry_run", emailCmd.Flags().Lookup("dry_run"))

	var smtpServer string
	emailCmd.Flags().StringVar(&smtpServer, "smtp_server", "smtp.gmail.com:587", "SMTP server, as host:port")
	viper.BindPFlag("smtp_server", emailCmd.Flags().Lookup("smtp_server"))

	var smtpUsername string
	emailCmd.Flags().StringVar(&smtpUsername, "smtp_username", "", "SMTP username")
	viper.BindPFlag("smtp_username", emailCmd.Flags().Lookup("smtp_username"))

	var smtpPassword string
	emailCmd.Flags().StringVar(&smtpPassword, "smtp_password", "", "SMTP password")
	viper.BindPFlag("smtp_password", emailCmd.Flags().Lookup("smtp_password"))

	var sendgridAPIKey string
	emailCmd.Flags().StringVar(&sendgridAPIKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", emailCmd.Flags().Lookup("sendgrid_api_key"))
}

// splitDateArgs separates up to two trailing date arguments from the
// analysis names before them.
func splitDateArgs(args []string) (names []string, dates []string) {
	names = args
	for len(names) > 0 && len(dates) < 2 {
		last := names[len(names)-1]
		if _, err := parseSingleDatestring(last); err != nil {
			break
		}
		dates = append([]string{last}, dates...)
		names = names[:len(names)-1]
	}
	return names, dates
}

func sendEmail(ctx context.Context, config SendEmailConfig) error {
	actions := make([]Analyser, 0)
	for _, actionName := range config.Types {
		action, err := getActionFromName(actionName)
		if err != nil {
			return err
		}
		actions = append(actions, action)
	}

	subject, out, err := generateEmailContent(ctx, config, actions)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, out)
		return nil
	}

	if config.SendgridAPIKey != "" {
		return sendWithSendgrid(config, subject, out)
	}
	return sendWithSMTP(config, subject, out)
}

func sendWithSendgrid(config SendEmailConfig, subject, body string) error {
	from := mail.NewEmail("chart-gaps", config.From)
	to := mail.NewEmail(config.To, config.To)
	message := mail.NewSingleEmail(from, subject, to, body, body)
	client := sendgrid.NewSendClient(config.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}
	if response.StatusCode/100 != 2 {
		return fmt.Errorf("sendEmail: sendgrid returned %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func sendWithSMTP(config SendEmailConfig, subject, body string) error {
	if config.SMTPUsername == "" || config.SMTPPassword == "" {
		return fmt.Errorf("smtp_username and smtp_password must be set in order to send emails")
	}

	host, _, err := net.SplitHostPort(config.SMTPServer)
	if err != nil {
		return fmt.Errorf("smtp_server: %w", err)
	}

	msg := "From: chart-gaps <" + config.From + ">\r\n" +
		"To: " + config.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		body

	auth := smtp.PlainAuth("", config.SMTPUsername, config.SMTPPassword, host)
	err = smtp.SendMail(config.SMTPServer, auth, config.From, []string{config.To}, []byte(msg))
	if err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}
	return nil
}

func generateEmailContent(ctx context.Context, config SendEmailConfig, actions []Analyser) (subject string, body string, err error) {
	var sb strings.Builder
	sb.WriteString(`
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
`)
	for _, action := range actions {
		analysis, err := action.GetResults(ctx, config.Analyser)
		if err != nil {
			return "", "", fmt.Errorf("getting results for %s: %w", action.GetName(), err)
		}

		sb.WriteString("<div>\n")
		fmt.Fprintf(&sb, "<h2>%s</h2>\n", action.GetName())
		if len(analysis.results) <= 1 {
			sb.WriteString("<div>No songs found.</div>\n")
		} else {
			sb.WriteString("<table>\n<thead>\n<tr>")
			for _, header := range analysis.results[0] {
				fmt.Fprintf(&sb, "<th>%s</th>", html.EscapeString(header))
			}
			sb.WriteString("</tr>\n</thead>\n<tbody>\n")
			for _, row := range analysis.results[1:] {
				sb.WriteString("<tr>\n")
				for _, column := range row {
					fmt.Fprintf(&sb, "<td>%s</td>\n", html.EscapeString(column))
				}
				sb.WriteString("</tr>\n")
			}
			sb.WriteString("</tbody>\n</table>\n")
		}
		fmt.Fprintf(&sb, "<div>%s</div>\n</div>\n", html.EscapeString(analysis.summary))
	}
	sb.WriteString("  </body>\n</html>\n")

	subject = fmt.Sprintf("Hot 100 report: %s", strings.Join(config.Types, ", "))
	return subject, sb.String(), nil
}

func getActionFromName(actionName string) (Analyser, error) {
	actionMap := map[string]Analyser{
		"histogram": HistogramAnalyser{},
		"comebacks": ComebacksAnalyser{},
	}

	action, ok := actionMap[actionName]
	if !ok {
		return nil, fmt.Errorf("Invalid analysis_name: %s", actionName)
	}

	return action, nil
}
