package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/so-keyldzn/semantiq/internal/model"
)

func TestParseHeuristic_UnregisteredLanguageYieldsNoSymbols(t *testing.T) {
	t.Parallel()

	assert.Empty(t, parseHeuristic("cobol", []string{"DIVISION."}))
}

func TestParseHeuristic_CSharpClassAndMethod(t *testing.T) {
	t.Parallel()

	lines := []string{
		"namespace Demo {",
		"  public class Account {",
		"    public int GetBalance() {",
		"      return 0;",
		"    }",
		"  }",
		"}",
	}
	symbols := parseHeuristic("csharp", lines)

	account := symbolNamed(symbols, "Account")
	require.NotNil(t, account)
	assert.Equal(t, model.SymbolClass, account.Kind)

	getBalance := symbolNamed(symbols, "GetBalance")
	require.NotNil(t, getBalance)
	assert.Equal(t, model.SymbolMethod, getBalance.Kind)
}

func TestParseHeuristic_ElixirModuleAndFunction(t *testing.T) {
	t.Parallel()

	lines := []string{
		"defmodule Billing.Invoice do",
		"  def total(items) do",
		"    0",
		"  end",
		"end",
	}
	symbols := parseHeuristic("elixir", lines)

	mod := symbolNamed(symbols, "Billing.Invoice")
	require.NotNil(t, mod)
	assert.Equal(t, model.SymbolModule, mod.Kind)

	total := symbolNamed(symbols, "total")
	require.NotNil(t, total)
	assert.Equal(t, model.SymbolFunction, total.Kind)
}

func TestParseHeuristic_BashFunction(t *testing.T) {
	t.Parallel()

	lines := []string{
		"deploy() {",
		"  echo hi",
		"}",
	}
	symbols := parseHeuristic("bash", lines)

	deploy := symbolNamed(symbols, "deploy")
	require.NotNil(t, deploy)
	assert.Equal(t, model.SymbolFunction, deploy.Kind)
}

func TestHeuristicBlockEnd_StopsAtNextSiblingIndentation(t *testing.T) {
	t.Parallel()

	lines := []string{
		"class A:",
		"    pass",
		"class B:",
		"    pass",
	}
	end := heuristicBlockEnd(lines, 0)
	assert.Equal(t, 2, end, "block should end right before the sibling declaration line")
}
