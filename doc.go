/*
Package ruleops is the evaluation core of a declarative business-rules
engine for clinical and other tabular data validation.

A rule invokes a named operator against a target value (a scalar or a
column of a tabular dataset) and zero or more comparator arguments, and
gets back a boolean verdict or a per-row boolean mask.

The typed value wrappers live in the value subpackage (String, Numeric,
Boolean, Select, SelectMultiple, Generic); the dataframe operator suite
lives in the dataset subpackage; the operator catalog used by rule
authoring tools lives in the operator subpackage.

ruleops does not parse rules, schedule them, read or write data, or offer
a UI. It evaluates one predicate at a time against one in-memory dataset.
*/
package ruleops
