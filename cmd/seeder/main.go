package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"tierbench/internal/app"
	"tierbench/internal/document"
	"tierbench/internal/loader"
	"tierbench/internal/relational"
	"tierbench/internal/seed"
	"tierbench/ioc"
)

type options struct {
	configPath       string
	animals          int
	branches         int
	relations        int
	maxPerItem       int
	animalsPerBranch int
	policy           string
	clear            bool
	reset            bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "配置文件路径")
	flag.IntVar(&opts.animals, "animals", 10, "动物数量，最多 100")
	flag.IntVar(&opts.branches, "branches", 5, "分店数量，最多 100")
	flag.IntVar(&opts.relations, "relations", 20, "关系数量")
	flag.IntVar(&opts.maxPerItem, "max-per-item", 0, "每条关系的最大数量，0 表示使用配置")
	flag.IntVar(&opts.animalsPerBranch, "animals-per-branch", 3, "文档模型中每个分店的动物数")
	flag.StringVar(&opts.policy, "policy", "", "with_replacement 或 without_replacement，空表示使用配置")
	flag.BoolVar(&opts.clear, "clear", false, "写入前清空目标存储")
	flag.BoolVar(&opts.reset, "reset", false, "写入前重置随机源")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}
	cmd := flag.Arg(0)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cmd, opts); err != nil {
		fmt.Fprintf(os.Stderr, "%s 执行失败: %v\n", cmd, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, opts options) error {
	cfg, err := ioc.InitConfig(ioc.ConfigPath(opts.configPath))
	if err != nil {
		return err
	}
	logger, err := ioc.InitLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	req := seed.Request{
		AnimalCount:        opts.animals,
		BranchCount:        opts.branches,
		RelationCount:      opts.relations,
		RelationMaxPerItem: opts.maxPerItem,
		Policy:             opts.policy,
		Clear:              opts.clear,
		ResetSource:        opts.reset,
	}
	docReq := seed.DocRequest{
		BranchCount:      opts.branches,
		AnimalsPerBranch: opts.animalsPerBranch,
		Clear:            opts.clear,
		ResetSource:      opts.reset,
	}

	switch cmd {
	case "preview":
		svc, err := app.NewService(cfg, nil, nil, nil, logger)
		if err != nil {
			return err
		}
		batch, err := svc.Preview(req)
		if err != nil {
			return err
		}
		return printJSON(batch)
	case "preview-docs":
		svc, err := app.NewService(cfg, nil, nil, nil, logger)
		if err != nil {
			return err
		}
		batch, err := svc.PreviewDocuments(docReq)
		if err != nil {
			return err
		}
		return printJSON(batch)
	case "seed", "seed-docs", "seed-graph", "clear":
	default:
		usage()
		return fmt.Errorf("未知命令: %s", cmd)
	}

	stores, cleanup, err := openStores(ctx, cmd, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()
	svc, err := ioc.InitAppService(cfg, stores.rel, stores.doc, stores.graph, logger)
	if err != nil {
		return err
	}

	var result any
	switch cmd {
	case "seed":
		result, err = svc.Seed(ctx, req)
	case "seed-docs":
		result, err = svc.SeedDocuments(ctx, docReq)
	case "seed-graph":
		result, err = svc.SeedGraph(ctx, req)
	case "clear":
		result, err = svc.Clear(ctx)
	}
	if err != nil {
		return err
	}
	return printJSON(result)
}

type storeSet struct {
	rel   *relational.Store
	doc   *document.Store
	graph *loader.Client
}

// openStores 只打开命令需要的存储，clear 打开全部已配置的存储。
func openStores(ctx context.Context, cmd string, cfg app.Config, logger *zap.Logger) (storeSet, func(), error) {
	var (
		set      storeSet
		cleanups []func()
	)
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	if cmd == "seed" || cmd == "clear" {
		rel, done, err := ioc.InitRelationalStore(ctx, cfg, logger)
		if err != nil {
			return set, nil, err
		}
		set.rel = rel
		cleanups = append(cleanups, done)
	}
	if cmd == "seed-docs" || cmd == "clear" {
		doc, done, err := ioc.InitDocumentStore(ctx, cfg, logger)
		if err != nil {
			cleanup()
			return set, nil, err
		}
		set.doc = doc
		cleanups = append(cleanups, done)
	}
	if cmd == "seed-graph" || cmd == "clear" {
		client, done, err := ioc.InitGraphClient(ctx, cfg, logger)
		if err != nil {
			cleanup()
			return set, nil, err
		}
		set.graph = client
		cleanups = append(cleanups, done)
	}
	return set, cleanup, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage() {
	fmt.Println("用法: seeder [-config configs/config.yaml] [flags] {preview|preview-docs|seed|seed-docs|seed-graph|clear}")
}
