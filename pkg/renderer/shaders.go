// pkg/renderer/shaders.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

// Attribute locations match the field order of Vertex.
const vertexShaderSource = `#version 330 core
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;
layout(location = 2) in vec4 aColor;

out vec2 vUV;
out vec4 vColor;

void main() {
    vUV = aUV;
    vColor = aColor;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const fragmentShaderSource = `#version 330 core
in vec2 vUV;
in vec4 vColor;

uniform bool uUseTex;
uniform sampler2D uTex;

out vec4 fragColor;

void main() {
    vec4 col = vColor;
    if (uUseTex) {
        col *= texture(uTex, vUV);
    }
    fragColor = col;
}
`

// The distance field is stored with the outline at 0.5; fwidth keeps the
// edge about one pixel wide regardless of scale.
const sdfFragmentShaderSource = `#version 330 core
in vec2 vUV;
in vec4 vColor;

uniform sampler2D uTex;

out vec4 fragColor;

void main() {
    float dist = texture(uTex, vUV).a;
    float w = fwidth(dist);
    float alpha = smoothstep(0.5 - w, 0.5 + w, dist);
    fragColor = vec4(vColor.rgb, vColor.a * alpha);
}
`
