package main

import (
	"io"
	"log"
	"testing"

	"github.com/lixenwraith/into-the-hole/config"
)

func TestBuildChain(t *testing.T) {
	quiet := log.New(io.Discard, "", 0)
	cfg := config.Default()

	chain, err := buildChain(cfg, 7, true, 12, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if chain.Advanced() != 12 {
		t.Errorf("advanced = %d", chain.Advanced())
	}
	if chain.ItemCount() == 0 {
		t.Error("no items after recycling with items on")
	}

	bare, err := buildChain(cfg, 7, false, 3, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if bare.ItemCount() != 0 {
		t.Errorf("items = %d with items off", bare.ItemCount())
	}
}
