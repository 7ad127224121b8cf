// Package driven defines the outbound interfaces the core services
// depend on: conversion capabilities, the remote fetcher, and the
// artifact publisher. Adapters implement these; the core never imports
// an adapter.
package driven
