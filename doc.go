// Package jewelkit 是珠宝电商的推荐工具包（Jewellery Recommender Kit）。
//
// 设计要点：
// - Engine-first: 核心是 engine.Engine，从用户行为（浏览/心愿单/加购/购买）
//   构建偏好画像，并用加权相似度对商品做 Top-K 排序
// - Pipeline 可组合: 画像召回 / 锚点召回 / 热门兜底通过 Node 串联
//   （Recall → Filter → Rank → ReRank）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 策略驱动
package jewelkit

import "github.com/rushteam/jewelkit/pipeline"

// 轻量 facade：便于用户直接 import "jewelkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
