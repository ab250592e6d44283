package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fathurwithyou/silberschatz/config"
	"github.com/fathurwithyou/silberschatz/parser"
	"github.com/fathurwithyou/silberschatz/processor"
	"github.com/fathurwithyou/silberschatz/sildb"
	"github.com/fathurwithyou/silberschatz/types"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sildb",
	Short: "sildb runs a scripted demo session against the query engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewDefaultConfig()
		if configPath != "" {
			loaded, err := config.FromFile(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		return runDemo(cfg)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDemo(cfg *config.Config) error {
	db := sildb.NewDatabase(cfg)
	conn := db.NewConnection()

	for _, stmt := range demoScript() {
		result := conn.ExecuteStatement(stmt)
		printResult(stmt, result)
	}
	return nil
}

// demoScript builds the statement sequence the demo runs: create and seed a
// users table, query it a few ways, then show transactional rollback.
func demoScript() []*parser.Statement {
	create := parser.NewStatement(parser.CREATE_TABLE)
	create.TableName_ = "users"
	create.ColDefExpressions_ = []*parser.ColDefExpression{
		{ColName_: "id", ColType_: types.Integer, Nullable_: false},
		{ColName_: "name", ColType_: types.Varchar, Nullable_: false},
		{ColName_: "age", ColType_: types.Integer, Nullable_: true},
	}
	create.PrimaryKeyCol_ = "id"

	insert := parser.NewStatement(parser.INSERT)
	insert.TableName_ = "users"
	insert.Values_ = [][]types.Value{
		{types.NewInteger(1), types.NewVarchar("alice"), types.NewInteger(34)},
		{types.NewInteger(2), types.NewVarchar("bob"), types.NewNull(types.Integer)},
		{types.NewInteger(3), types.NewVarchar("carol"), types.NewInteger(27)},
	}

	selectAll := parser.NewStatement(parser.SELECT)
	selectAll.TableName_ = "users"

	selectAdults := parser.NewStatement(parser.SELECT)
	selectAdults.TableName_ = "users"
	selectAdults.SelectFields_ = []*parser.SelectField{{ColName_: "name"}, {ColName_: "age"}}
	selectAdults.WhereExpression_ = parser.Cmp(parser.GE, parser.ColRef("age"), parser.Lit(types.NewInteger(30)))
	selectAdults.OrderByExpressions_ = []*parser.OrderByExpression{{ColName_: "age", IsDesc_: true}}

	begin := parser.NewStatement(parser.BEGIN)

	deleteAll := parser.NewStatement(parser.DELETE)
	deleteAll.TableName_ = "users"

	abort := parser.NewStatement(parser.ABORT)

	return []*parser.Statement{create, insert, selectAll, selectAdults, begin, deleteAll, abort, selectAll}
}

func printResult(stmt *parser.Statement, result *processor.ExecutionResult) {
	if !result.Success {
		fmt.Printf("%-12s -> %s\n", stmt.StatementType_, result.Message)
		return
	}
	if len(result.Columns) > 0 {
		fmt.Printf("%-12s -> %d row(s)\n", stmt.StatementType_, result.RowCount)
		fmt.Printf("  %v\n", result.Columns)
		for _, row := range result.Rows {
			cells := make([]string, 0, len(row))
			for _, v := range row {
				cells = append(cells, v.ToString())
			}
			fmt.Printf("  %v\n", cells)
		}
		return
	}
	if result.Message != "" {
		fmt.Printf("%-12s -> %s\n", stmt.StatementType_, result.Message)
		return
	}
	fmt.Printf("%-12s -> %d row(s) affected\n", stmt.StatementType_, result.RowCount)
}
