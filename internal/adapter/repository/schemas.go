package repository

import "github.com/eslsoft/lingodeck/pkg/filterexpr"

var listSentencesSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"status": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Status",
				filterexpr.OpIN: "Statuses",
			},
		},
		"next_due": {
			Kind: filterexpr.KindDate,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpLTE: "DueBefore",
				filterexpr.OpGTE: "DueAfter",
			},
		},
		"text": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpSW: "TextPrefix"},
		},
		"language": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Language"},
		},
		"practice_count": {
			Kind: filterexpr.KindNumber,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpGTE: "MinPractice",
				filterexpr.OpLTE: "MaxPractice",
			},
		},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary:     "created_at",
		DefaultPrimaryDesc: false,
		FallbackKey:        "id",
		FallbackDesc:       false,
		Fields: map[string]filterexpr.OrderField{
			"next_due":       {Expr: "next_due"},
			"created_at":     {Expr: "created_at"},
			"updated_at":     {Expr: "updated_at"},
			"last_practiced": {Expr: "last_practiced", Nulls: "last"},
			"practice_count": {Expr: "practice_count"},
			"id":             {Expr: "id"},
		},
	},
}
