// Package performance turns a flat log of evaluations into period buckets, trends,
// insights and cohort rollups. Every function here is a pure projection of its input:
// nothing is cached and the same input always yields the same output, regardless of
// the order evaluations arrive in.
package performance
