package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/aru-nika-08/attendance-tracking-system/cmd/app/commands"
	"github.com/aru-nika-08/attendance-tracking-system/internal/app"
	"github.com/aru-nika-08/attendance-tracking-system/internal/config"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getQRCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-signing-key",
			Usage: "Generate a new QR token signing key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "KMS key URI used to encrypt the key (e.g., base64key://..., gcpkms://...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateSigningKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "issue-token",
			Usage: "Mint a QR token for a class session",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "staff-id", Required: true, Usage: "Issuing staff member ID"},
				&cli.StringFlag{Name: "staff-name", Usage: "Issuing staff member name"},
				&cli.StringFlag{Name: "course-id", Required: true, Usage: "Course ID"},
				&cli.StringFlag{Name: "course-name", Usage: "Course name"},
				&cli.StringFlag{Name: "session-date", Usage: "Session date (YYYY-MM-DD)"},
				&cli.StringFlag{Name: "period", Usage: "Timetable period"},
				&cli.StringFlag{Name: "start-time", Usage: "Session start time"},
				&cli.StringFlag{Name: "end-time", Usage: "Session end time"},
				&cli.StringFlag{Name: "location", Usage: "Room or venue"},
				&cli.StringFlag{Name: "attendance-type", Usage: "Attendance type (e.g., lecture, lab)"},
				&cli.StringFlag{Name: "class-name", Usage: "Class or section name"},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				issuer, err := container.TokenIssuer()
				if err != nil {
					return err
				}

				return commands.RunIssueToken(
					ctx,
					issuer,
					container.Logger(),
					commands.DefaultIO().Writer,
					&qrDomain.SessionMetadata{
						StaffID:        cmd.String("staff-id"),
						StaffName:      cmd.String("staff-name"),
						SessionDate:    cmd.String("session-date"),
						Period:         cmd.String("period"),
						StartTime:      cmd.String("start-time"),
						EndTime:        cmd.String("end-time"),
						CourseID:       cmd.String("course-id"),
						CourseName:     cmd.String("course-name"),
						Location:       cmd.String("location"),
						AttendanceType: cmd.String("attendance-type"),
						ClassName:      cmd.String("class-name"),
					},
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "inspect-token",
			Usage: "Verify a QR token and print its payload",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "QR token to verify",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				verifier, err := container.TokenVerifier()
				if err != nil {
					return err
				}

				return commands.RunInspectToken(
					ctx,
					verifier,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("token"),
					cmd.String("format"),
				)
			},
		},
	}
}
