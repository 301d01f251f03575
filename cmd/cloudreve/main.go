// Command cloudreve is a small command-line front end for the client
// library: list, transfer, and share files on a Cloudreve server of either
// protocol generation.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/cloudrevehq/cloudreve-go"
	"github.com/cloudrevehq/cloudreve-go/api"
	"github.com/cloudrevehq/cloudreve-go/options"
	"github.com/cloudrevehq/cloudreve-go/tokencache"
)

func main() {
	app := &cli.App{
		Name:  "cloudreve",
		Usage: "interact with a Cloudreve server (v3 or v4)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server", Aliases: []string{"s"}, Usage: "server base URL", Required: true},
			&cli.StringFlag{Name: "version", Usage: "pin the API version (v3 or v4) instead of probing"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log requests"},
		},
		Commands: []*cli.Command{
			{
				Name:      "login",
				Usage:     "log in and cache the credential",
				ArgsUsage: "<username>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "password (prompted for insecurely via env CLOUDREVE_PASSWORD when unset)"},
				},
				Action: loginAction,
			},
			{
				Name:      "ls",
				Usage:     "list a directory",
				ArgsUsage: "<path>",
				Action:    lsAction,
			},
			{
				Name:      "mkdir",
				Usage:     "create a directory",
				ArgsUsage: "<path>",
				Action:    mkdirAction,
			},
			{
				Name:      "rm",
				Usage:     "delete files or directories",
				ArgsUsage: "<path> [path...]",
				Action:    rmAction,
			},
			{
				Name:      "mv",
				Usage:     "move or rename a file",
				ArgsUsage: "<src> <dest>",
				Action:    mvAction,
			},
			{
				Name:      "cp",
				Usage:     "copy a file",
				ArgsUsage: "<src> <dest>",
				Action:    cpAction,
			},
			{
				Name:      "upload",
				Usage:     "upload a local file",
				ArgsUsage: "<local-file> <remote-path>",
				Action:    uploadAction,
			},
			{
				Name:      "url",
				Usage:     "resolve a download URL",
				ArgsUsage: "<path>",
				Action:    urlAction,
			},
			{
				Name:      "share",
				Usage:     "create a share link",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "password", Usage: "protect the link with a password"},
					&cli.Int64Flag{Name: "expire", Usage: "seconds until the link expires"},
				},
				Action: shareAction,
			},
			{
				Name:   "quota",
				Usage:  "show the storage quota",
				Action: quotaAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %s", err))
		os.Exit(1)
	}
}

func newClient(c *cli.Context) (*cloudreve.Client, *tokencache.Cache, error) {
	server := c.String("server")

	cache, err := tokencache.New("")
	if err != nil {
		return nil, nil, err
	}

	var opts []options.NewClientOption[cloudreve.Client]
	switch c.String("version") {
	case "v3":
		opts = append(opts, cloudreve.WithVersion(api.VersionV3))
	case "v4":
		opts = append(opts, cloudreve.WithVersion(api.VersionV4))
	case "":
	default:
		return nil, nil, fmt.Errorf("unknown version %q", c.String("version"))
	}
	if c.Bool("verbose") {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, cloudreve.WithLogger(logger))
	}

	if token, err := cache.Load(server); err == nil {
		switch token.Version {
		case api.VersionV3:
			opts = append(opts, cloudreve.WithSessionCookie(token.SessionCookie))
		case api.VersionV4:
			opts = append(opts, cloudreve.WithAccessToken(token.AccessToken, token.RefreshToken))
		}
	} else if !errors.Is(err, tokencache.ErrNotCached) {
		return nil, nil, err
	}

	client, err := cloudreve.NewClient(context.Background(), server, opts...)
	if err != nil {
		return nil, nil, err
	}
	return client, cache, nil
}

func loginAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("login takes exactly one argument: the username")
	}
	password := c.String("password")
	if password == "" {
		password = os.Getenv("CLOUDREVE_PASSWORD")
	}
	if password == "" {
		return errors.New("no password given: use --password or CLOUDREVE_PASSWORD")
	}

	client, cache, err := newClient(c)
	if err != nil {
		return err
	}

	login, err := client.Login(context.Background(), c.Args().Get(0), password)
	if err != nil {
		return err
	}
	if err := cache.Store(c.String("server"), client.Token()); err != nil {
		return err
	}

	fmt.Printf("logged in as %s (%s api)\n", color.GreenString(login.Nickname()), client.Version())
	return nil
}

func lsAction(c *cli.Context) error {
	client, _, err := newClient(c)
	if err != nil {
		return err
	}

	path := c.Args().Get(0)
	if path == "" {
		path = "/"
	}
	list, err := client.ListFilesAll(context.Background(), path)
	if err != nil {
		return err
	}

	for _, f := range list.Files() {
		if f.IsFolder() {
			fmt.Printf("%12s  %s\n", "-", color.BlueString(f.Name()+"/"))
		} else {
			fmt.Printf("%12d  %s\n", f.Size(), f.Name())
		}
	}
	return nil
}

func mkdirAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("mkdir takes exactly one argument: the path")
	}
	client, _, err := newClient(c)
	if err != nil {
		return err
	}
	return client.CreateDirectory(context.Background(), c.Args().Get(0))
}

func rmAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("rm takes at least one path")
	}
	client, _, err := newClient(c)
	if err != nil {
		return err
	}

	report, err := client.BatchDelete(context.Background(), c.Args().Slice())
	if err != nil {
		return err
	}
	for _, p := range report.Succeeded {
		fmt.Println(color.GreenString("deleted %s", p))
	}
	for _, f := range report.Failed {
		fmt.Println(color.RedString("failed %s: %s", f.Path, f.Err))
	}
	if !report.OK() {
		return fmt.Errorf("%d of %d deletions failed", len(report.Failed), len(report.Failed)+len(report.Succeeded))
	}
	return nil
}

func mvAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("mv takes exactly two arguments: src and dest")
	}
	client, _, err := newClient(c)
	if err != nil {
		return err
	}
	return client.Move(context.Background(), c.Args().Get(0), c.Args().Get(1))
}

func cpAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("cp takes exactly two arguments: src and dest")
	}
	client, _, err := newClient(c)
	if err != nil {
		return err
	}
	return client.Copy(context.Background(), c.Args().Get(0), c.Args().Get(1))
}

func uploadAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("upload takes exactly two arguments: local file and remote path")
	}
	content, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return err
	}

	client, _, err := newClient(c)
	if err != nil {
		return err
	}
	if err := client.Upload(context.Background(), c.Args().Get(1), content, ""); err != nil {
		return err
	}
	fmt.Println(color.GreenString("uploaded %d bytes to %s", len(content), c.Args().Get(1)))
	return nil
}

func urlAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("url takes exactly one argument: the path")
	}
	client, _, err := newClient(c)
	if err != nil {
		return err
	}
	link, err := client.Download(context.Background(), c.Args().Get(0))
	if err != nil {
		return err
	}
	fmt.Println(link)
	return nil
}

func shareAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("share takes exactly one argument: the path")
	}
	client, _, err := newClient(c)
	if err != nil {
		return err
	}
	share, err := client.CreateShare(context.Background(), c.Args().Get(0), cloudreve.ShareOptions{
		Password: c.String("password"),
		Expire:   c.Int64("expire"),
	})
	if err != nil {
		return err
	}
	fmt.Println(share.URL())
	return nil
}

func quotaAction(c *cli.Context) error {
	client, _, err := newClient(c)
	if err != nil {
		return err
	}
	quota, err := client.GetStorageQuota(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("used %d / %d bytes (%d free)\n", quota.Used, quota.Total, quota.Free)
	return nil
}
