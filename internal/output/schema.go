package output

// Schema is the JSON Schema (Draft 2020-12) for a single advisory result as
// written by JSONFormatter, also used for each result in WriteJSONBatch.
// Money and rate values are numbers.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/rgehrsitz/taxadvisor/advisory-result.schema.json",
  "title": "Tax Advisory Result",
  "description": "Output schema for taxadvisor compute --format=json",
  "type": "object",
  "required": ["calculations", "insights", "optimizations", "riskAssessment", "aiConfidence"],
  "properties": {
    "calculations": { "$ref": "#/$defs/Calculations" },
    "insights": {
      "type": "array",
      "items": { "$ref": "#/$defs/Insight" }
    },
    "optimizations": {
      "type": "array",
      "description": "Subset of insights with type optimization",
      "items": { "$ref": "#/$defs/Insight" }
    },
    "riskAssessment": { "$ref": "#/$defs/RiskAssessment" },
    "aiConfidence": {
      "type": "integer",
      "minimum": 0,
      "maximum": 100,
      "description": "Rounded mean of insight confidences, 0 with no insights"
    },
    "skippedRules": {
      "type": "array",
      "items": { "type": "string" }
    }
  },
  "$defs": {
    "Calculations": {
      "type": "object",
      "required": [
        "adjustedGrossIncome", "taxableIncome", "federalTax",
        "selfEmploymentTax", "totalTax", "effectiveRate", "marginalRate"
      ],
      "properties": {
        "adjustedGrossIncome": { "type": "number" },
        "taxableIncome": { "type": "number", "minimum": 0 },
        "federalTax": { "type": "number", "minimum": 0 },
        "selfEmploymentTax": { "type": "number", "minimum": 0 },
        "totalTax": { "type": "number", "minimum": 0 },
        "effectiveRate": {
          "type": "number",
          "description": "Total tax as a percent of gross income, 2 decimal places"
        },
        "marginalRate": {
          "type": "number",
          "minimum": 0,
          "maximum": 1,
          "description": "Rate of the bracket containing taxable income"
        },
        "taxYear": { "type": "integer" },
        "bracketStatus": { "$ref": "#/$defs/FilingStatus" }
      }
    },
    "FilingStatus": {
      "type": "string",
      "enum": ["single", "marriedJoint", "marriedSeparate", "headOfHousehold"]
    },
    "Insight": {
      "type": "object",
      "required": [
        "id", "type", "title", "description", "impactAmount",
        "confidencePercent", "actionRequired", "priority", "category"
      ],
      "properties": {
        "id": { "type": "string", "description": "Deterministic UUID derived from rule and tax year" },
        "type": {
          "type": "string",
          "enum": ["optimization", "warning", "planning", "calculation"]
        },
        "title": { "type": "string" },
        "description": { "type": "string" },
        "impactAmount": { "type": "number", "minimum": 0 },
        "confidencePercent": { "type": "integer", "minimum": 0, "maximum": 100 },
        "actionRequired": { "type": "boolean" },
        "priority": { "type": "string", "enum": ["high", "medium", "low"] },
        "category": { "type": "string" },
        "rule": { "type": "string" }
      }
    },
    "RiskAssessment": {
      "type": "object",
      "required": ["score", "level", "factors", "recommendations"],
      "properties": {
        "score": { "type": "integer", "minimum": 0 },
        "level": { "type": "string", "enum": ["low", "medium", "high"] },
        "factors": {
          "type": "array",
          "items": { "type": "string" }
        },
        "recommendations": {
          "type": "array",
          "items": { "type": "string" }
        }
      }
    }
  }
}`
