package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ryojerryyu/blog-infra/lib/edge"
)

var edgeConfig struct {
	host          string
	uri           string
	query         string
	canonicalHost string
	cleanURLStyle string
}

func newEdgeCmd() *cobra.Command {
	edgeCmd := &cobra.Command{
		Use:       "edge <viewer-request|origin-request>",
		Short:     "Evaluate the edge rules of a phase against a request and print the result",
		Args:      cobra.ExactArgs(1),
		ValidArgs: edge.Phases,
		RunE:      runEdge,
	}
	flags := edgeCmd.Flags()
	flags.StringVar(&edgeConfig.host, "host", "", "Host header of the request")
	flags.StringVar(&edgeConfig.uri, "uri", "/", "Request URI")
	flags.StringVar(&edgeConfig.query, "query", "", "Raw query string, without '?'")
	flags.StringVar(&edgeConfig.canonicalHost, "canonical-host", "", "Host redirects point at (defaults to --host)")
	flags.StringVar(&edgeConfig.cleanURLStyle, "clean-url-style", string(edge.StyleIndex), "index | html")
	_ = edgeCmd.MarkFlagRequired("host")
	return edgeCmd
}

func runEdge(cmd *cobra.Command, args []string) error {
	style, err := edge.ParseCleanURLStyle(edgeConfig.cleanURLStyle)
	if err != nil {
		return err
	}
	canonical := edgeConfig.canonicalHost
	if canonical == "" {
		canonical = edgeConfig.host
	}
	rules, err := edge.RulesForPhase(args[0], canonical, style)
	if err != nil {
		return err
	}

	res := rules.Apply(edge.NewRequest(edgeConfig.host, edgeConfig.uri, edgeConfig.query))
	zap.L().Debug("evaluated edge rules",
		zap.String("phase", args[0]),
		zap.String("uri", edgeConfig.uri),
		zap.Bool("redirect", res.IsRedirect()))

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
