package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"sfmc2graph/internal/app"
	"sfmc2graph/ioc"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)

	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	api, err := ioc.InitSFMCClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "构建 sfmc 客户端失败: %v\n", err)
		os.Exit(1)
	}

	svc, err := app.NewService(ctx, cfg, api, zap.NewNop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "构建服务失败: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close(ctx)

	switch cmd {
	case "crawl":
		graph, crawlErr := svc.Crawl(ctx)
		if crawlErr != nil {
			err = crawlErr
			break
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(graph)
	case "export":
		err = svc.Export(ctx)
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s 执行失败: %v\n", cmd, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("用法: crawler [-config configs/config.yaml] {crawl|export}")
}
