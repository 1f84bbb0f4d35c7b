package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	log "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
)

// applyShopFile overlays settings from an HCL shop policy file:
//
//	shop "main" {
//	  labor_rate   = default_labor_rate + 15.0
//	  default_make = "FORD"
//
//	  fees {
//	    mode  = "percent"
//	    value = 6.5
//	  }
//
//	  tax {
//	    percent = 8.25
//	  }
//
//	  approval {
//	    ceiling = default_ceiling
//	  }
//	}
//
// Attribute expressions can reference default_labor_rate and default_ceiling.
func (c *Config) applyShopFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return fmt.Errorf("parse errors: %s", diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return fmt.Errorf("unexpected body type")
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_labor_rate": cty.NumberFloatVal(DefaultLaborRate),
			"default_ceiling":    cty.NumberFloatVal(c.ApprovalCeiling),
		},
	}

	found := false
	for _, block := range body.Blocks {
		if block.Type != "shop" {
			continue
		}
		found = true
		c.applyShopBlock(block, evalCtx)
	}
	if !found {
		log.WithField("path", path).Warn("Shop policy file has no shop block")
	}
	return nil
}

func (c *Config) applyShopBlock(block *hclsyntax.Block, evalCtx *hcl.EvalContext) {
	for name, attr := range block.Body.Attributes {
		val, ok := evalAttr(attr, evalCtx)
		if !ok {
			continue
		}
		switch name {
		case "labor_rate":
			c.LaborRate = ctyFloat(val, c.LaborRate)
		case "default_make":
			c.DefaultMake = strings.ToUpper(ctyString(val, c.DefaultMake))
		}
	}

	for _, nested := range block.Body.Blocks {
		switch nested.Type {
		case "fees":
			c.applyFeesBlock(nested, evalCtx)
		case "tax":
			c.applyTaxBlock(nested, evalCtx)
		case "approval":
			c.applyApprovalBlock(nested, evalCtx)
		}
	}
}

func (c *Config) applyFeesBlock(block *hclsyntax.Block, evalCtx *hcl.EvalContext) {
	for name, attr := range block.Body.Attributes {
		val, ok := evalAttr(attr, evalCtx)
		if !ok {
			continue
		}
		switch name {
		case "mode":
			c.FeeMode = strings.ToLower(ctyString(val, c.FeeMode))
		case "value":
			c.FeeValue = ctyFloat(val, c.FeeValue)
		}
	}
}

func (c *Config) applyTaxBlock(block *hclsyntax.Block, evalCtx *hcl.EvalContext) {
	for name, attr := range block.Body.Attributes {
		val, ok := evalAttr(attr, evalCtx)
		if !ok {
			continue
		}
		if name == "percent" {
			c.TaxPct = ctyFloat(val, c.TaxPct)
		}
	}
}

func (c *Config) applyApprovalBlock(block *hclsyntax.Block, evalCtx *hcl.EvalContext) {
	for name, attr := range block.Body.Attributes {
		val, ok := evalAttr(attr, evalCtx)
		if !ok {
			continue
		}
		if name == "ceiling" {
			c.ApprovalCeiling = ctyFloat(val, c.ApprovalCeiling)
		}
	}
}

func evalAttr(attr *hclsyntax.Attribute, evalCtx *hcl.EvalContext) (cty.Value, bool) {
	val, diags := attr.Expr.Value(evalCtx)
	if diags.HasErrors() || !val.IsKnown() || val.IsNull() {
		log.WithField("attribute", attr.Name).Warn("Skipping unevaluable shop policy attribute")
		return cty.NilVal, false
	}
	return val, true
}

func ctyFloat(val cty.Value, fallback float64) float64 {
	if val.Type() == cty.Number {
		f, _ := val.AsBigFloat().Float64()
		return f
	}
	return fallback
}

func ctyString(val cty.Value, fallback string) string {
	if val.Type() == cty.String {
		return val.AsString()
	}
	return fallback
}
