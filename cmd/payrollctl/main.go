// Copyright 2016-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Command payrollctl is a command-line client for payrolld.
//
//     payrollctl --url http://localhost:8080/ list
//     payrollctl create --name "Samwise Gamgee" --role gardener
//     payrollctl replace 3 --name "Samwise Gamgee" --role mayor
//     payrollctl get 3
//     payrollctl delete 3
//
// Results are printed as YAML.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/diffeo/go-payroll/payroll"
	"github.com/diffeo/go-payroll/restclient"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v2"
)

// employeeOutput is the printed form of an employee.
type employeeOutput struct {
	ID        int64  `yaml:"id"`
	Name      string `yaml:"name"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Role      string `yaml:"role"`
}

func toOutput(e payroll.Employee) employeeOutput {
	return employeeOutput{
		ID:        e.ID,
		Name:      e.Name(),
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Role:      e.Role,
	}
}

func printYAML(w io.Writer, v interface{}) error {
	bytes, err := yaml.Marshal(v)
	if err == nil {
		_, err = w.Write(bytes)
	}
	return err
}

// client holds the state shared by all subcommands.
type client struct {
	Repository payroll.Repository
	Out        io.Writer
}

func (cl *client) idArg(c *cli.Context) (int64, error) {
	if c.NArg() != 1 {
		return 0, errors.New("expected exactly one employee ID")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return 0, payroll.ErrBadID
	}
	return id, nil
}

func (cl *client) List(c *cli.Context) error {
	all, err := cl.Repository.FindAll(context.Background())
	if err != nil {
		return err
	}
	out := make([]employeeOutput, len(all))
	for i, e := range all {
		out[i] = toOutput(e)
	}
	return printYAML(cl.Out, out)
}

func (cl *client) Get(c *cli.Context) error {
	id, err := cl.idArg(c)
	if err != nil {
		return err
	}
	e, err := cl.Repository.FindByID(context.Background(), id)
	if err != nil {
		return err
	}
	return printYAML(cl.Out, toOutput(e))
}

func (cl *client) Create(c *cli.Context) error {
	e := payroll.NewEmployee(c.String("name"), c.String("role"))
	e, err := cl.Repository.Save(context.Background(), e)
	if err != nil {
		return err
	}
	return printYAML(cl.Out, toOutput(e))
}

func (cl *client) Replace(c *cli.Context) error {
	id, err := cl.idArg(c)
	if err != nil {
		return err
	}
	e := payroll.NewEmployee(c.String("name"), c.String("role"))
	e.ID = id
	e, err = cl.Repository.Save(context.Background(), e)
	if err != nil {
		return err
	}
	return printYAML(cl.Out, toOutput(e))
}

func (cl *client) Delete(c *cli.Context) error {
	id, err := cl.idArg(c)
	if err != nil {
		return err
	}
	return cl.Repository.DeleteByID(context.Background(), id)
}

var employeeFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "name",
		Usage: "full name of the employee",
	},
	cli.StringFlag{
		Name:  "role",
		Usage: "job title of the employee",
	},
}

// newApp builds the command line application.  connect is called
// once before any subcommand runs to get the repository.
func newApp(out io.Writer, connect func(url string) (payroll.Repository, error)) *cli.App {
	cl := &client{Out: out}

	app := cli.NewApp()
	app.Name = "payrollctl"
	app.Usage = "manage employees in a payroll server"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "url",
			Value:  "http://localhost:8080/",
			Usage:  "base URL of the payroll server",
			EnvVar: "PAYROLL_URL",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "list",
			Usage:  "list all employees",
			Action: cl.List,
		},
		{
			Name:      "get",
			Usage:     "show one employee",
			ArgsUsage: "ID",
			Action:    cl.Get,
		},
		{
			Name:   "create",
			Usage:  "add a new employee",
			Flags:  employeeFlags,
			Action: cl.Create,
		},
		{
			Name:      "replace",
			Usage:     "replace an employee, creating it if needed",
			ArgsUsage: "ID",
			Flags:     employeeFlags,
			Action:    cl.Replace,
		},
		{
			Name:      "delete",
			Usage:     "remove an employee",
			ArgsUsage: "ID",
			Action:    cl.Delete,
		},
	}
	app.Before = func(c *cli.Context) (err error) {
		cl.Repository, err = connect(c.String("url"))
		if err != nil {
			err = fmt.Errorf("connecting to %v: %v", c.String("url"), err)
		}
		return
	}
	return app
}

func main() {
	app := newApp(os.Stdout, restclient.New)
	if err := app.Run(os.Args); err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("payrollctl failed")
	}
}
