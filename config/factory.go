package config

import (
	"fmt"
	"time"

	"github.com/rushteam/jewelkit/core"
	"github.com/rushteam/jewelkit/engine"
	"github.com/rushteam/jewelkit/feature"
	"github.com/rushteam/jewelkit/filter"
	"github.com/rushteam/jewelkit/pipeline"
	"github.com/rushteam/jewelkit/pkg/conv"
	"github.com/rushteam/jewelkit/rank"
	"github.com/rushteam/jewelkit/recall"
	"github.com/rushteam/jewelkit/rerank"
)

// Deps 是配置驱动 Pipeline 的运行时依赖。
// Engine/Store/Catalog 属于进程级对象，没法写进 YAML，
// 由组合根注入，builder 闭包引用。
type Deps struct {
	Engine  *engine.Engine
	Store   core.KeyValueStore
	Catalog core.CatalogService
}

// DefaultFactory 返回一个包含所有内置 Node 的工厂。
//
// 支持的类型：
//   - recall.fanout / recall.profile / recall.anchor / recall.popular
//   - rank.similarity
//   - filter
//   - rerank.topn / rerank.diversity
//   - feature.enrich
func DefaultFactory(deps Deps) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	factory.Register("recall.fanout", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return buildFanoutNode(deps, cfg)
	})
	factory.Register("recall.profile", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return buildProfileNode(deps, cfg)
	})
	factory.Register("recall.anchor", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return buildAnchorNode(deps, cfg)
	})
	factory.Register("recall.popular", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return buildPopularNode(deps, cfg)
	})
	factory.Register("rank.similarity", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return buildSimilarityNode(deps, cfg)
	})
	factory.Register("filter", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return buildFilterNode(deps, cfg)
	})
	factory.Register("rerank.topn", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return buildTopNNode(cfg)
	})
	factory.Register("rerank.diversity", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return buildDiversityNode(cfg)
	})
	factory.Register("feature.enrich", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return buildEnrichNode(deps)
	})

	return factory
}

func buildFanoutNode(deps Deps, cfg map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "profile":
			node, err := buildProfileNode(deps, sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.Profile))
		case "anchor":
			node, err := buildAnchorNode(deps, sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.Anchor))
		case "popular":
			node, err := buildPopularNode(deps, sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.Popular))
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources: sources,
		Dedup:   conv.ConfigGet(cfg, "dedup", true),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	switch conv.ConfigGet(cfg, "merge_strategy", "") {
	case "priority":
		fanout.MergeStrategy = &recall.PriorityMergeStrategy{}
	case "union":
		fanout.MergeStrategy = &recall.UnionMergeStrategy{}
	default:
		fanout.MergeStrategy = &recall.FirstMergeStrategy{}
	}

	return fanout, nil
}

func buildProfileNode(deps Deps, cfg map[string]interface{}) (pipeline.Node, error) {
	if deps.Engine == nil {
		return nil, fmt.Errorf("recall.profile requires engine")
	}
	return &recall.Profile{
		Engine: deps.Engine,
		TopK:   int(conv.ConfigGetInt64(cfg, "topk", 0)),
	}, nil
}

func buildAnchorNode(deps Deps, cfg map[string]interface{}) (pipeline.Node, error) {
	if deps.Engine == nil {
		return nil, fmt.Errorf("recall.anchor requires engine")
	}
	return &recall.Anchor{
		Engine:   deps.Engine,
		ParamKey: conv.ConfigGet(cfg, "param_key", ""),
		TopK:     int(conv.ConfigGetInt64(cfg, "topk", 0)),
	}, nil
}

func buildPopularNode(deps Deps, cfg map[string]interface{}) (pipeline.Node, error) {
	return &recall.Popular{
		Store:   deps.Store,
		Catalog: deps.Catalog,
		Key:     conv.ConfigGet(cfg, "key", ""),
		TopK:    int(conv.ConfigGetInt64(cfg, "topk", 0)),
		IDs:     conv.SliceAnyToString(cfg["ids"]),
	}, nil
}

func buildSimilarityNode(deps Deps, cfg map[string]interface{}) (pipeline.Node, error) {
	if deps.Engine == nil {
		return nil, fmt.Errorf("rank.similarity requires engine")
	}
	return &rank.SimilarityNode{
		Engine:         deps.Engine,
		AnchorParamKey: conv.ConfigGet(cfg, "anchor_param_key", ""),
	}, nil
}

func buildFilterNode(deps Deps, cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet(filterMap, "type", ""); filterType {
		case "purchased":
			filters = append(filters, &filter.PurchasedFilter{
				Engine:    deps.Engine,
				Store:     deps.Store,
				KeyPrefix: conv.ConfigGet(filterMap, "key_prefix", ""),
			})
		case "rule":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("rule filter requires expr")
			}
			filters = append(filters, &filter.RuleFilter{Expr: expr})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}

func buildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{
		N: int(conv.ConfigGetInt64(cfg, "n", 0)),
	}, nil
}

func buildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	labelKey := conv.ConfigGet(cfg, "label_key", "category")
	if labelKey == "" {
		labelKey = "category"
	}
	return &rerank.Diversity{LabelKey: labelKey}, nil
}

func buildEnrichNode(deps Deps) (pipeline.Node, error) {
	if deps.Engine == nil {
		return nil, fmt.Errorf("feature.enrich requires engine")
	}
	return &feature.EnrichNode{Engine: deps.Engine}, nil
}
