/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package main is the entry point of the interactive flow runner. It drives
// an authentication flow from the terminal: it renders the remediations of
// each response, prompts for the field values and proceeds until tokens are
// issued.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/asgardeo/spark/idx"
	"github.com/asgardeo/spark/idx/contextstore"
	"github.com/asgardeo/spark/internal/system/log"
)

// contextKey is the fixed key the runner persists its flow context under.
const contextKey = "flowcli"

func main() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowCLI"))

	configPath := flag.String("config", "", "Path to the client configuration yaml file")
	storePath := flag.String("context-store", "", "Path to a sqlite file for persisting the flow context")
	resume := flag.Bool("resume", false, "Resume the previously persisted flow instead of starting a new one")
	flag.Parse()

	// A .env file is optional; environment settings win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Skipping .env file", log.Error(err))
	}

	cfg, err := loadConfiguration(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", log.Error(err))
	}

	client, err := idx.NewClient(cfg)
	if err != nil {
		logger.Fatal("Failed to create client", log.Error(err))
	}

	var store contextstore.StoreInterface
	if *storePath != "" {
		store, err = contextstore.NewSQLStore(contextstore.DriverSQLite, *storePath, 0)
		if err != nil {
			logger.Fatal("Failed to open context store", log.Error(err))
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				logger.Error("Error closing context store", log.Error(closeErr))
			}
		}()
	}

	ctx := context.Background()
	response, err := openFlow(ctx, client, store, *resume)
	if err != nil {
		logger.Fatal("Failed to open flow", log.Error(err))
	}

	reader := bufio.NewReader(os.Stdin)
	for !response.LoginSuccess() {
		printMessages(response)

		remediation, err := chooseRemediation(reader, response)
		if err != nil {
			logger.Fatal("Failed to choose remediation", log.Error(err))
		}

		values, err := promptFormValues(reader, remediation.Form, "")
		if err != nil {
			logger.Fatal("Failed to read input", log.Error(err))
		}

		response, err = remediation.Proceed(ctx, values)
		if err != nil {
			fmt.Printf("Step failed: %v\n", err)
			response, err = client.Resume(ctx)
			if err != nil {
				logger.Fatal("Failed to recover flow state", log.Error(err))
			}
			continue
		}

		saveContext(ctx, client, store, logger)
	}

	token, err := client.ExchangeCode(ctx, response)
	if err != nil {
		logger.Fatal("Failed to exchange interaction code", log.Error(err))
	}
	clearContext(ctx, store, logger)

	fmt.Println("Authenticated.")
	fmt.Printf("  access token:  %s\n", log.MaskString(token.AccessToken))
	fmt.Printf("  token type:    %s\n", token.TokenType)
	fmt.Printf("  scope:         %s\n", token.Scope)
	fmt.Printf("  expires at:    %s\n", token.ExpiresAt().Format("2006-01-02 15:04:05"))
	if token.IDToken != "" {
		if claims, err := token.IDTokenClaims(); err == nil {
			fmt.Printf("  subject:       %v\n", claims["sub"])
		}
	}
}

// loadConfiguration prefers an explicit config file and falls back to the
// environment.
func loadConfiguration(path string) (*idx.Configuration, error) {
	if path != "" {
		return idx.LoadConfiguration(path)
	}
	return idx.ConfigurationFromEnv()
}

// openFlow either resumes a persisted flow or starts a new one.
func openFlow(ctx context.Context, client *idx.Client, store contextstore.StoreInterface,
	resume bool) (*idx.Response, error) {
	if resume {
		if store == nil {
			return nil, errors.New("resume requires a context store")
		}
		flowContext, err := store.Load(ctx, contextKey)
		if err != nil {
			return nil, fmt.Errorf("no resumable flow: %w", err)
		}
		if err := client.RestoreContext(flowContext); err != nil {
			return nil, err
		}
		return client.Resume(ctx)
	}
	return client.Start(ctx, nil)
}

// saveContext persists the active context, when a store is configured.
func saveContext(ctx context.Context, client *idx.Client, store contextstore.StoreInterface, logger *log.Logger) {
	if store == nil {
		return
	}
	flowContext := client.Context()
	if flowContext == nil {
		return
	}
	if err := store.Save(ctx, contextKey, flowContext); err != nil {
		logger.Error("Error persisting flow context", log.Error(err))
	}
}

// clearContext drops the persisted context after the flow completed.
func clearContext(ctx context.Context, store contextstore.StoreInterface, logger *log.Logger) {
	if store == nil {
		return
	}
	if err := store.Delete(ctx, contextKey); err != nil {
		logger.Error("Error clearing flow context", log.Error(err))
	}
}

// printMessages renders the server messages of a response.
func printMessages(response *idx.Response) {
	for _, message := range response.Messages() {
		fmt.Printf("[%s] %s\n", message.Class, message.Text)
	}
}

// chooseRemediation lets the user pick the next step when the server offers
// more than one.
func chooseRemediation(reader *bufio.Reader, response *idx.Response) (*idx.Remediation, error) {
	remediations := response.Remediations()
	if len(remediations) == 0 {
		return nil, errors.New("server offered no next step")
	}
	if len(remediations) == 1 {
		fmt.Printf("Step: %s\n", remediations[0].Name)
		return remediations[0], nil
	}

	fmt.Println("Available steps:")
	for i, remediation := range remediations {
		fmt.Printf("  %d) %s\n", i+1, remediation.Name)
	}
	for {
		choice, err := prompt(reader, "Step number")
		if err != nil {
			return nil, err
		}
		index, err := strconv.Atoi(choice)
		if err == nil && index >= 1 && index <= len(remediations) {
			return remediations[index-1], nil
		}
		fmt.Println("Not a valid step number.")
	}
}

// promptFormValues collects values for the visible, mutable fields of a form.
// Nested forms are walked with dotted paths; option fields are selected by
// label.
func promptFormValues(reader *bufio.Reader, form *idx.Form, prefix string) (map[string]interface{}, error) {
	values := map[string]interface{}{}
	for _, field := range form.Fields() {
		if !field.Visible || !field.Mutable {
			continue
		}
		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}

		switch {
		case len(field.Options) > 0:
			// Selection mutates the remediation form; the path is relative
			// to the form owning the field.
			if err := promptOption(reader, form, field, field.Name); err != nil {
				return nil, err
			}
		case field.Form != nil:
			nested, err := promptFormValues(reader, field.Form, path)
			if err != nil {
				return nil, err
			}
			for nestedPath, nestedValue := range nested {
				values[nestedPath] = nestedValue
			}
		default:
			label := field.Label
			if label == "" {
				label = field.Name
			}
			input, err := prompt(reader, label)
			if err != nil {
				return nil, err
			}
			if input != "" {
				values[path] = input
			}
		}
	}
	return values, nil
}

// promptOption renders the options of a field and applies the selection
// directly on the form.
func promptOption(reader *bufio.Reader, form *idx.Form, field *idx.Field, path string) error {
	fmt.Printf("Choose %s:\n", field.Name)
	for _, option := range field.Options {
		fmt.Printf("  - %s\n", option.Label)
	}
	for {
		choice, err := prompt(reader, "Option")
		if err != nil {
			return err
		}
		if err := form.SelectOption(path, choice); err == nil {
			return nil
		}
		fmt.Println("Not a valid option.")
	}
}

// prompt reads one trimmed line of input.
func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
